package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrKindMismatch возвращается при конвертации записи чужого типа
var ErrKindMismatch = errors.New("record kind mismatch")

// Update одно обновление из getUpdates
type Update struct {
	MessageID    *int64 // MessageID сообщение или пост канала
	ChatMemberID *int64 // ChatMemberID изменение членства бота
	ChatID       *int64
	Type         string // Type "message", "channel post" или пусто
	ID           int64
}

// Message сообщение чата
type Message struct {
	Date             time.Time
	EditDate         *time.Time
	ForwardDate      *time.Time
	ChatID           *int64
	FromID           *int64
	SenderChatID     *int64
	ReplyToMessageID *int64
	ButtonListID     *int64
	ThreadID         *int64
	ForwardFromID    *int64
	NewChatMemberID  *int64
	Text             string
	Caption          string
	StickerID        string
	DocumentID       string
	AnimationFileID  string
	PhotoFileID      string
	NewChatPhotoID   string
	NewChatTitle     string
	ForwardSender    string
	ID               int64
}

// User пользователь протокола
type User struct {
	FirstName    string
	LastName     string
	Username     string
	LanguageCode string
	ID           int64
	IsBot        bool
	IsPremium    bool
}

// DisplayName возвращает @username или имя
func (u *User) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName
}

// Chat чат, группа или канал
type Chat struct {
	Type      string
	Title     string
	Username  string
	FirstName string
	LastName  string
	ID        int64
}

// File файл, в том числе стикер
type File struct {
	ID                 string
	UniqueID           string
	FileName           string
	MimeType           string
	SetName            string
	Emoji              string
	Type               string
	PremiumAnimationID string
	Size               int64
	Width              int64
	Height             int64
	Duration           int64
	IsAnimated         bool
	IsVideo            bool
}

// Extension возвращает расширение файла стикера внутри архива набора
func (f *File) Extension() string {
	if f.IsAnimated {
		return "tgs"
	}
	return "webp"
}

// StickerSet именованный набор стикеров
type StickerSet struct {
	Name          string
	Title         string
	StickerType   string
	FileIDs       []string
	ContainsMasks bool
}

// Button кнопка inline-клавиатуры
type Button struct {
	Text         string
	CallbackData string
	ID           int64
}

// ButtonList inline-клавиатура: строки с идентификаторами кнопок
type ButtonList struct {
	Rows [][]int64
	ID   int64
}

// ChatMemberUpdate изменение статуса бота в чате
type ChatMemberUpdate struct {
	Date      time.Time
	ChatID    *int64
	FromID    *int64
	OldUserID *int64
	NewUserID *int64
	OldStatus string
	NewStatus string
	ID        int64
}

// ChannelPost пост в канале
type ChannelPost struct {
	Date           time.Time
	ChatID         *int64
	SenderChatID   *int64
	Text           string
	Caption        string
	DocumentFileID string
	PhotoFileID    string
	MediaGroupID   string
	ID             int64
}

func checkKind(r *Record, want Kind) error {
	if r == nil {
		return fmt.Errorf("nil record: %w", ErrKindMismatch)
	}
	if r.Kind != want {
		return fmt.Errorf("expected %s, got %s: %w", want, r.Kind, ErrKindMismatch)
	}
	return nil
}

// UpdateFromRecord строит типизированное обновление
func UpdateFromRecord(r *Record) (*Update, error) {
	if err := checkKind(r, KindUpdate); err != nil {
		return nil, err
	}
	id, err := r.IntID()
	if err != nil {
		return nil, err
	}
	return &Update{
		ID:           id,
		Type:         r.Fields["type"],
		MessageID:    r.optInt("message_id"),
		ChatMemberID: r.optInt("my_chat_member_id"),
		ChatID:       r.optInt("chat_id"),
	}, nil
}

// MessageFromRecord строит типизированное сообщение
func MessageFromRecord(r *Record) (*Message, error) {
	if err := checkKind(r, KindMessage); err != nil {
		return nil, err
	}
	id, err := r.IntID()
	if err != nil {
		return nil, err
	}
	m := &Message{
		ID:               id,
		ChatID:           r.optInt("chat_id"),
		FromID:           r.optInt("from_id"),
		SenderChatID:     r.optInt("sender_chat_id"),
		ReplyToMessageID: r.optInt("reply_to_message_id"),
		ButtonListID:     r.optInt("button_list_id"),
		ThreadID:         r.optInt("message_thread_id"),
		ForwardFromID:    r.optInt("forward_from_id"),
		NewChatMemberID:  r.optInt("new_chat_member_id"),
		Text:             r.Fields["text"],
		Caption:          r.Fields["caption"],
		StickerID:        r.Fields["sticker_id"],
		DocumentID:       r.Fields["document_id"],
		AnimationFileID:  r.Fields["animation_file_id"],
		PhotoFileID:      r.Fields["photo_file_id"],
		NewChatPhotoID:   r.Fields["new_chat_photo_id"],
		NewChatTitle:     r.Fields["new_chat_title"],
		ForwardSender:    r.Fields["forward_sender_name"],
		EditDate:         r.optTime("edit_date_time"),
		ForwardDate:      r.optTime("forward_date_time"),
	}
	if d := r.optTime("date_time"); d != nil {
		m.Date = *d
	}
	return m, nil
}

// UserFromRecord строит типизированного пользователя
func UserFromRecord(r *Record) (*User, error) {
	if err := checkKind(r, KindUser); err != nil {
		return nil, err
	}
	id, err := r.IntID()
	if err != nil {
		return nil, err
	}
	return &User{
		ID:           id,
		FirstName:    r.Fields["first_name"],
		LastName:     r.Fields["last_name"],
		Username:     r.Fields["username"],
		LanguageCode: r.Fields["language_code"],
		IsBot:        r.Fields["is_bot"] == "true",
		IsPremium:    r.Fields["is_premium"] == "true",
	}, nil
}

// ChatFromRecord строит типизированный чат
func ChatFromRecord(r *Record) (*Chat, error) {
	if err := checkKind(r, KindChat); err != nil {
		return nil, err
	}
	id, err := r.IntID()
	if err != nil {
		return nil, err
	}
	return &Chat{
		ID:        id,
		Type:      r.Fields["type"],
		Title:     r.Fields["title"],
		Username:  r.Fields["username"],
		FirstName: r.Fields["first_name"],
		LastName:  r.Fields["last_name"],
	}, nil
}

// FileFromRecord строит типизированный файл
func FileFromRecord(r *Record) (*File, error) {
	if err := checkKind(r, KindFile); err != nil {
		return nil, err
	}
	f := &File{
		ID:                 r.ID,
		UniqueID:           r.Fields["file_unique_id"],
		FileName:           r.Fields["file_name"],
		MimeType:           r.Fields["mime_type"],
		SetName:            r.Fields["set_name"],
		Emoji:              r.Fields["emoji"],
		Type:               r.Fields["type"],
		PremiumAnimationID: r.Fields["premium_animation_file_id"],
		IsAnimated:         r.Fields["is_animated"] == "true",
		IsVideo:            r.Fields["is_video"] == "true",
	}
	f.Size = r.intOrZero("file_size")
	f.Width = r.intOrZero("width")
	f.Height = r.intOrZero("height")
	f.Duration = r.intOrZero("duration")
	return f, nil
}

// StickerSetFromRecord строит типизированный набор
func StickerSetFromRecord(r *Record) (*StickerSet, error) {
	if err := checkKind(r, KindStickerSet); err != nil {
		return nil, err
	}
	return &StickerSet{
		Name:          r.ID,
		Title:         r.Fields["title"],
		StickerType:   r.Fields["sticker_type"],
		ContainsMasks: r.Fields["contains_masks"] == "true",
		FileIDs:       append([]string(nil), r.FileIDs...),
	}, nil
}

// ButtonFromRecord строит типизированную кнопку
func ButtonFromRecord(r *Record) (*Button, error) {
	if err := checkKind(r, KindButton); err != nil {
		return nil, err
	}
	id, err := r.IntID()
	if err != nil {
		return nil, err
	}
	return &Button{
		ID:           id,
		Text:         r.Fields["text"],
		CallbackData: r.Fields["callback_data"],
	}, nil
}

// ButtonListFromRecord восстанавливает сетку кнопок из row_R_col_C_button_id
func ButtonListFromRecord(r *Record) (*ButtonList, error) {
	if err := checkKind(r, KindButtonList); err != nil {
		return nil, err
	}
	id, err := r.IntID()
	if err != nil {
		return nil, err
	}
	bl := &ButtonList{ID: id}
	numRows := r.intOrZero("num_rows")
	for row := int64(0); row < numRows; row++ {
		numCols := r.intOrZero(fmt.Sprintf("row_%d_num_cols", row))
		cols := make([]int64, 0, numCols)
		for col := int64(0); col < numCols; col++ {
			cols = append(cols, r.intOrZero(fmt.Sprintf("row_%d_col_%d_button_id", row, col)))
		}
		bl.Rows = append(bl.Rows, cols)
	}
	return bl, nil
}

// ChatMemberUpdateFromRecord строит типизированное изменение членства
func ChatMemberUpdateFromRecord(r *Record) (*ChatMemberUpdate, error) {
	if err := checkKind(r, KindChatMember); err != nil {
		return nil, err
	}
	id, err := r.IntID()
	if err != nil {
		return nil, err
	}
	cm := &ChatMemberUpdate{
		ID:        id,
		ChatID:    r.optInt("chat_id"),
		FromID:    r.optInt("from_id"),
		OldUserID: r.optInt("old_chat_member_user_id"),
		NewUserID: r.optInt("new_chat_member_user_id"),
		OldStatus: r.Fields["old_chat_member_status"],
		NewStatus: r.Fields["new_chat_member_status"],
	}
	if d := r.optTime("date_time"); d != nil {
		cm.Date = *d
	}
	return cm, nil
}

// ChannelPostFromRecord строит типизированный пост канала
func ChannelPostFromRecord(r *Record) (*ChannelPost, error) {
	if err := checkKind(r, KindChannelPost); err != nil {
		return nil, err
	}
	id, err := r.IntID()
	if err != nil {
		return nil, err
	}
	p := &ChannelPost{
		ID:             id,
		ChatID:         r.optInt("chat_id"),
		SenderChatID:   r.optInt("sender_chat_id"),
		Text:           r.Fields["text"],
		Caption:        r.Fields["caption"],
		DocumentFileID: r.Fields["document_file_id"],
		PhotoFileID:    r.Fields["photo_file_id"],
		MediaGroupID:   r.Fields["media_group_id"],
	}
	if d := r.optTime("date_time"); d != nil {
		p.Date = *d
	}
	return p, nil
}

func (r *Record) optInt(key string) *int64 {
	v, ok := r.Fields[key]
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func (r *Record) intOrZero(key string) int64 {
	if n := r.optInt(key); n != nil {
		return *n
	}
	return 0
}

func (r *Record) optTime(key string) *time.Time {
	v, ok := r.Fields[key]
	if !ok || v == "" {
		return nil
	}
	t, err := time.ParseInLocation(DateTimeLayout, v, time.Local)
	if err != nil {
		return nil
	}
	return &t
}
