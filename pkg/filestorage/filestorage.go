package filestorage

import "io"

type FileStorageInterface interface {
	Save(file io.Reader, originalFileName string) (filePath string, err error)
	Delete(filePath string) error
}
