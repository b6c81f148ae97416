package storage

import "context"

// DownloadStateStorage сохраняет очередь загрузок между перезапусками
type DownloadStateStorage interface {
	SavePendingDownloads(ctx context.Context, fileIDs []string) error
	LoadPendingDownloads(ctx context.Context) ([]string, error)
}

// StickerSetStateStorage хранит имена наборов, сборка которых не завершена
type StickerSetStateStorage interface {
	MarkStickerSetInProgress(ctx context.Context, name string) error
	ClearStickerSetInProgress(ctx context.Context, name string) error
	ListStickerSetsInProgress(ctx context.Context) ([]string, error)
}

// ChatStateStorage хранит чаты, которым бот когда-либо писал
type ChatStateStorage interface {
	AddActiveChat(ctx context.Context, chatID int64) error
	ListActiveChats(ctx context.Context) ([]int64, error)
}

// DeliveryStateStorage хранит факты отправки архивов пользователям
type DeliveryStateStorage interface {
	MarkDelivered(ctx context.Context, setName string, userID int64) error
	IsDelivered(ctx context.Context, setName string, userID int64) (bool, error)
}

// DigestStorage хранит контрольные суммы скачанных файлов
type DigestStorage interface {
	// SaveFileDigest stores the digest of the file bytes
	SaveFileDigest(ctx context.Context, fileID, digest string) error

	// GetFileDigest returns ErrNotFound if no digest was recorded
	GetFileDigest(ctx context.Context, fileID string) (string, error)
}

// StateStorage объединяет все хранилища состояния выполнения
type StateStorage interface {
	DownloadStateStorage
	StickerSetStateStorage
	ChatStateStorage
	DeliveryStateStorage
	DigestStorage
	Close() error
}
