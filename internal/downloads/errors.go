package downloads

import "errors"

var (
	// ErrEmptyFileID file-id не задан
	ErrEmptyFileID = errors.New("file id is empty")

	// ErrInvalidFileID file-id нельзя использовать как имя файла
	ErrInvalidFileID = errors.New("file id is not a valid file name")

	// ErrNoFilePath ответ getFile без file_path
	ErrNoFilePath = errors.New("getFile result has no file_path")
)
