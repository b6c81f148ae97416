package models

import (
	"fmt"
	"maps"
	"strconv"
	"time"
)

// Kind тип сущности протокола
type Kind string

const (
	KindUpdate      Kind = "update"
	KindMessage     Kind = "message"
	KindUser        Kind = "user"
	KindChat        Kind = "chat"
	KindFile        Kind = "file"
	KindStickerSet  Kind = "sticker_set"
	KindButton      Kind = "button"
	KindButtonList  Kind = "button_list"
	KindChatMember  Kind = "my_chat_member"
	KindChannelPost Kind = "channel_post"
)

const (
	// DateTimeLayout формат хранения дат
	DateTimeLayout = "2006-01-02 15:04:05"
	// FieldStickerFile ключ строк со списком файлов набора
	FieldStickerFile = "sticker_file_id"
)

// Kinds перечисляет все известные типы сущностей в порядке загрузки
var Kinds = []Kind{
	KindUpdate,
	KindMessage,
	KindUser,
	KindChat,
	KindFile,
	KindStickerSet,
	KindButton,
	KindButtonList,
	KindChatMember,
	KindChannelPost,
}

// Table возвращает имя таблицы для типа сущности
func (k Kind) Table() string {
	return string(k) + "_info"
}

// StringID сообщает, что идентификатор сущности строковый (file_id, имя набора)
func (k Kind) StringID() bool {
	return k == KindFile || k == KindStickerSet
}

// Valid проверяет, что тип входит в закрытый набор
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Record плоское представление сущности: формат хранения в базе.
// Для наборов стикеров FileIDs хранит упорядоченный список файлов.
type Record struct {
	Fields  map[string]string
	Kind    Kind
	ID      string
	FileIDs []string
}

// NewRecord создает запись с заполненным полем id
func NewRecord(kind Kind, id string) *Record {
	return &Record{
		Kind:   kind,
		ID:     id,
		Fields: map[string]string{"id": id},
	}
}

// NewIntRecord создает запись с числовым идентификатором
func NewIntRecord(kind Kind, id int64) *Record {
	return NewRecord(kind, strconv.FormatInt(id, 10))
}

// Get возвращает значение поля
func (r *Record) Get(key string) (string, bool) {
	v, ok := r.Fields[key]
	return v, ok
}

// Set устанавливает значение поля
func (r *Record) Set(key, value string) {
	if r.Fields == nil {
		r.Fields = make(map[string]string)
	}
	r.Fields[key] = value
}

// SetInt записывает целое в десятичной форме
func (r *Record) SetInt(key string, value int64) {
	r.Set(key, strconv.FormatInt(value, 10))
}

// SetBool записывает "true"/"false"
func (r *Record) SetBool(key string, value bool) {
	r.Set(key, strconv.FormatBool(value))
}

// SetTime записывает unix-время в формате DateTimeLayout
func (r *Record) SetTime(key string, unix int64) {
	r.Set(key, FormatUnix(unix))
}

// IntID возвращает числовой идентификатор записи
func (r *Record) IntID() (int64, error) {
	id, err := strconv.ParseInt(r.ID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("record %s/%s has non-numeric id: %w", r.Kind, r.ID, err)
	}
	return id, nil
}

// Clone возвращает глубокую копию записи
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := &Record{
		Kind:   r.Kind,
		ID:     r.ID,
		Fields: maps.Clone(r.Fields),
	}
	if r.FileIDs != nil {
		c.FileIDs = append([]string(nil), r.FileIDs...)
	}
	if c.Fields == nil {
		c.Fields = make(map[string]string)
	}
	return c
}

// FormatUnix форматирует unix-время в локальной зоне
func FormatUnix(unix int64) string {
	return time.Unix(unix, 0).Format(DateTimeLayout)
}
