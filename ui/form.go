package ui

import (
	"context"
	"errors"
	"strings"

	"snipbox/assist"
	"snipbox/logging"
	"snipbox/model"
	"snipbox/search"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldTitle = iota
	fieldTemplate
	fieldDescription
	fieldCategory
	fieldTags
	fieldCount
)

var formLabels = [fieldCount]string{"Title", "Template", "Description", "Category", "Tags"}

// assistResultMsg carries an assist reply back to the editor that asked.
type assistResultMsg struct {
	ticket assist.Ticket
	form   model.CommandForm
	err    error
}

// openForm starts an editing session for cmd, or for a new command when cmd
// is nil.
func (a *App) openForm(cmd *model.Command) tea.Cmd {
	a.mode = modeAdd
	a.editingID = ""
	if cmd != nil {
		a.mode = modeEdit
		a.editingID = cmd.ID
	}

	a.formInputs = make([]textinput.Model, fieldCount)
	placeholders := [fieldCount]string{
		"Name (e.g., tail pod logs)",
		"Command (use {{name}} for values to fill in)",
		"Description (optional)",
		"Category (optional)",
		"Tags, comma separated (optional)",
	}
	for i := range a.formInputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		a.formInputs[i] = in
	}
	if cmd != nil {
		a.setFormValues(cmd.Form())
	}

	a.assistOpen = false
	a.assistInput = textinput.New()
	a.assistInput.Placeholder = "Describe the command you need..."

	a.guard.Open()
	a.searchInput.Blur()
	a.formFocus = fieldTitle
	return a.focusFormInput()
}

func (a *App) closeForm() {
	a.guard.Close()
	a.assistOpen = false
	a.editingID = ""
	a.mode = modeNormal
	a.searchInput.Focus()
}

func (a *App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.assistOpen {
		return a.updateAssistPrompt(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "esc":
		a.closeForm()
		return a, nil

	case "ctrl+g":
		return a, a.openAssistPrompt()

	case "tab":
		if a.formFocus == fieldCategory && a.completeCategory() {
			return a, nil
		}
		a.formFocus = (a.formFocus + 1) % fieldCount
		return a, a.focusFormInput()

	case "down":
		a.formFocus = (a.formFocus + 1) % fieldCount
		return a, a.focusFormInput()

	case "shift+tab", "up":
		a.formFocus--
		if a.formFocus < 0 {
			a.formFocus = fieldCount - 1
		}
		return a, a.focusFormInput()

	case "enter":
		return a.submitForm()

	default:
		var cmd tea.Cmd
		a.formInputs[a.formFocus], cmd = a.formInputs[a.formFocus].Update(msg)
		return a, cmd
	}
}

// completeCategory replaces a partial category with the best existing match.
// It reports whether the field changed.
func (a *App) completeCategory() bool {
	value := strings.TrimSpace(a.formInputs[fieldCategory].Value())
	if value == "" {
		return false
	}
	hints := search.SuggestCategories(a.all, value, 1)
	if len(hints) == 0 || hints[0] == value {
		return false
	}
	a.formInputs[fieldCategory].SetValue(hints[0])
	a.formInputs[fieldCategory].CursorEnd()
	return true
}

func (a *App) focusFormInput() tea.Cmd {
	for i := range a.formInputs {
		a.formInputs[i].Blur()
	}
	return a.formInputs[a.formFocus].Focus()
}

func (a *App) formValues() model.CommandForm {
	return model.CommandForm{
		Title:       strings.TrimSpace(a.formInputs[fieldTitle].Value()),
		Template:    strings.TrimSpace(a.formInputs[fieldTemplate].Value()),
		Description: strings.TrimSpace(a.formInputs[fieldDescription].Value()),
		Category:    strings.TrimSpace(a.formInputs[fieldCategory].Value()),
		Tags:        model.ParseTags(a.formInputs[fieldTags].Value()),
	}
}

func (a *App) setFormValues(f model.CommandForm) {
	a.formInputs[fieldTitle].SetValue(f.Title)
	a.formInputs[fieldTemplate].SetValue(f.Template)
	a.formInputs[fieldDescription].SetValue(f.Description)
	a.formInputs[fieldCategory].SetValue(f.Category)
	a.formInputs[fieldTags].SetValue(strings.Join(f.Tags, ", "))
}

func (a *App) submitForm() (tea.Model, tea.Cmd) {
	form := a.formValues()

	var err error
	if a.mode == modeAdd {
		_, err = a.commands.Create(form)
	} else {
		_, err = a.commands.Update(a.editingID, form)
	}
	if err != nil {
		a.showError(err)
		return a, nil
	}

	if a.mode == modeAdd {
		a.status = "Added!"
	} else {
		// The card is rebuilt from the new template.
		delete(a.cards, a.editingID)
		a.status = "Updated!"
	}

	a.closeForm()
	a.refreshCommands()
	return a, nil
}

func (a *App) openAssistPrompt() tea.Cmd {
	if a.assistant == nil {
		a.err = "AI assist is not configured (set ai.api_key or OPENAI_API_KEY)"
		return nil
	}
	a.assistOpen = true
	a.formInputs[a.formFocus].Blur()
	return a.assistInput.Focus()
}

func (a *App) updateAssistPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "esc":
		a.assistOpen = false
		a.assistInput.Blur()
		return a, a.focusFormInput()

	case "enter":
		prompt := strings.TrimSpace(a.assistInput.Value())
		if prompt == "" {
			a.showError(assist.ErrEmptyPrompt)
			return a, nil
		}
		ticket, ok := a.guard.Begin()
		if !ok {
			a.status = "Still waiting for the last suggestion..."
			return a, nil
		}
		a.assistOpen = false
		a.assistInput.Blur()
		return a, tea.Batch(a.focusFormInput(), a.spinner.Tick, a.requestSuggestion(ticket, prompt))

	default:
		var cmd tea.Cmd
		a.assistInput, cmd = a.assistInput.Update(msg)
		return a, cmd
	}
}

func (a *App) requestSuggestion(ticket assist.Ticket, prompt string) tea.Cmd {
	assistant := a.assistant
	return func() tea.Msg {
		form, err := assistant.Suggest(context.Background(), prompt)
		return assistResultMsg{ticket: ticket, form: form, err: err}
	}
}

// applySuggestion fills the form from a reply, unless the editor it was
// requested from has been closed since. Failed replies leave the form alone.
func (a *App) applySuggestion(msg assistResultMsg) (tea.Model, tea.Cmd) {
	if !a.guard.Finish(msg.ticket) {
		logging.Debug().Msg("discarded assist reply from a closed editor")
		return a, nil
	}

	if msg.err != nil {
		if errors.Is(msg.err, assist.ErrMalformedResponse) {
			a.showError(msg.err)
		} else {
			a.err = "AI assist failed: " + msg.err.Error()
			logging.Warn().Err(msg.err).Msg("assist failed")
		}
		return a, nil
	}

	a.setFormValues(msg.form)
	a.status = "Draft filled in. Review and press enter to save."
	return a, nil
}

func (a *App) renderForm() string {
	var b strings.Builder

	title := "Add Command"
	if a.mode == modeEdit {
		title = "Edit Command"
	}
	b.WriteString(a.styles.label.Render(title))
	if a.guard.Busy() {
		b.WriteString("  " + a.spinner.View() + a.styles.muted.Render(" asking AI..."))
	}
	b.WriteString("\n\n")

	for i, input := range a.formInputs {
		b.WriteString(a.styles.label.Render(formLabels[i] + ": "))
		style := a.styles.input
		if i == a.formFocus && !a.assistOpen {
			style = a.styles.focusedInput
		}
		b.WriteString(style.Width(max(a.width-20, 20)).Render(input.View()))
		b.WriteString("\n")
		if i == fieldCategory && i == a.formFocus {
			if hints := search.SuggestCategories(a.all, input.Value(), 5); len(hints) > 0 {
				b.WriteString(a.styles.muted.Render("  " + strings.Join(hints, " · ")))
				b.WriteString("\n")
			}
		}
	}

	if a.assistOpen {
		b.WriteString("\n")
		b.WriteString(a.styles.label.Render("AI: "))
		b.WriteString(a.styles.focusedInput.Width(max(a.width-20, 20)).Render(a.assistInput.View()))
		b.WriteString("\n")
		b.WriteString(a.styles.help.Render("enter: ask • esc: back to form"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(a.styles.help.Render("tab: next field / complete category • ctrl+g: AI assist • enter: save • esc: cancel"))
	b.WriteString("\n")

	return b.String()
}
