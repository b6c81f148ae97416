package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_Table(t *testing.T) {
	assert.Equal(t, "sticker_set_info", KindStickerSet.Table())
	assert.Equal(t, "my_chat_member_info", KindChatMember.Table())
	assert.True(t, KindFile.StringID())
	assert.False(t, KindMessage.StringID())
	assert.True(t, KindButtonList.Valid())
	assert.False(t, Kind("photo").Valid())
}

func TestRecord_Clone(t *testing.T) {
	r := NewRecord(KindStickerSet, "foo")
	r.FileIDs = []string{"a", "b"}
	r.Set("title", "Foo")

	c := r.Clone()
	c.Set("title", "Bar")
	c.FileIDs[0] = "z"

	assert.Equal(t, "Foo", r.Fields["title"])
	assert.Equal(t, "a", r.FileIDs[0])
	assert.Equal(t, "foo", c.Fields["id"])
}

func TestMessageFromRecord(t *testing.T) {
	r := NewIntRecord(KindMessage, 17)
	r.SetInt("chat_id", -100)
	r.SetInt("from_id", 42)
	r.Set("text", "hello")
	r.Set("sticker_id", "CAAD")
	r.SetTime("date_time", 1700000000)

	m, err := MessageFromRecord(r)
	require.NoError(t, err)

	assert.Equal(t, int64(17), m.ID)
	require.NotNil(t, m.ChatID)
	assert.Equal(t, int64(-100), *m.ChatID)
	require.NotNil(t, m.FromID)
	assert.Equal(t, int64(42), *m.FromID)
	assert.Nil(t, m.ReplyToMessageID)
	assert.Equal(t, "hello", m.Text)
	assert.Equal(t, "CAAD", m.StickerID)
	assert.Equal(t, time.Unix(1700000000, 0).Unix(), m.Date.Unix())
}

func TestFromRecord_KindMismatch(t *testing.T) {
	_, err := UserFromRecord(NewIntRecord(KindChat, 1))
	require.ErrorIs(t, err, ErrKindMismatch)

	_, err = ChatFromRecord(nil)
	require.ErrorIs(t, err, ErrKindMismatch)
}

func TestFileFromRecord(t *testing.T) {
	r := NewRecord(KindFile, "f1")
	r.Set("is_animated", "true")
	r.Set("file_size", "2048")
	r.Set("set_name", "foo")

	f, err := FileFromRecord(r)
	require.NoError(t, err)
	assert.Equal(t, "tgs", f.Extension())
	assert.Equal(t, int64(2048), f.Size)
	assert.Equal(t, "foo", f.SetName)

	r.Set("is_animated", "false")
	f, err = FileFromRecord(r)
	require.NoError(t, err)
	assert.Equal(t, "webp", f.Extension())
}

func TestButtonListFromRecord(t *testing.T) {
	r := NewIntRecord(KindButtonList, 3)
	r.SetInt("num_rows", 2)
	r.SetInt("row_0_num_cols", 2)
	r.SetInt("row_0_col_0_button_id", 10)
	r.SetInt("row_0_col_1_button_id", 11)
	r.SetInt("row_1_num_cols", 1)
	r.SetInt("row_1_col_0_button_id", 12)

	bl, err := ButtonListFromRecord(r)
	require.NoError(t, err)
	assert.Equal(t, [][]int64{{10, 11}, {12}}, bl.Rows)
}

func TestUser_DisplayName(t *testing.T) {
	u := &User{FirstName: "Ann", LastName: "Lee"}
	assert.Equal(t, "Ann Lee", u.DisplayName())
	u.Username = "ann"
	assert.Equal(t, "@ann", u.DisplayName())
}
