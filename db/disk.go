package db

import (
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

// Disk stores each key as a file under a base directory. Writes go through a
// temp file and rename, so a reader never sees a half written blob.
type Disk struct {
	d *diskv.Diskv
}

func NewDisk(dir string) (*Disk, error) {
	tmp := filepath.Join(dir, ".tmp")
	if err := os.MkdirAll(tmp, 0755); err != nil {
		return nil, err
	}
	return &Disk{d: diskv.New(diskv.Options{
		BasePath:     dir,
		TempDir:      tmp,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}, nil
}

func (d *Disk) Get(key string) ([]byte, error) {
	if !d.d.Has(key) {
		return nil, nil
	}
	return d.d.Read(key)
}

func (d *Disk) Put(key string, value []byte) error {
	return d.d.Write(key, value)
}

func (d *Disk) Close() error {
	return nil
}
