package normalizer

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/iudanet/stickerbot/internal/events"
	"github.com/iudanet/stickerbot/internal/models"
)

// parseMessage разбирает сообщение. Вложенные пользователи, чаты, файлы,
// клавиатуры и сообщение-ответ сохраняются отдельно, в сообщении остаются их id.
func (n *Normalizer) parseMessage(ctx context.Context, obj gjson.Result) (*models.Record, error) {
	if rec, ok := n.existing(models.KindMessage, obj.Get("message_id")); ok {
		return rec, nil
	}

	rec := &models.Record{Kind: models.KindMessage, Fields: map[string]string{}}

	// ref разбирает вложенный объект и сохраняет ссылку на него
	ref := func(field string, kind models.Kind, v gjson.Result) error {
		child, err := n.normalize(ctx, kind, v)
		if err != nil {
			return fmt.Errorf("message %s: %w", field, err)
		}
		rec.Set(field, child.ID)
		return nil
	}
	// largest сохраняет самый крупный вариант фото
	largest := func(field string, v gjson.Result) error {
		last, ok := lastOf(v)
		if !ok {
			return &SchemaError{Kind: models.KindFile, Key: "file_id"}
		}
		return ref(field, models.KindFile, last)
	}

	err := n.walk(models.KindMessage, obj, func(key string, v gjson.Result) (bool, error) {
		switch key {
		case "animation":
			return true, ref("animation_file_id", models.KindFile, v)
		case "caption", "text", "new_chat_title", "forward_sender_name", "forward_signature":
			rec.Set(key, v.String())
		case "chat":
			return true, ref("chat_id", models.KindChat, v)
		case "date":
			rec.SetTime("date_time", v.Int())
		case "document":
			return true, ref("document_id", models.KindFile, v)
		case "edit_date":
			rec.SetTime("edit_date_time", v.Int())
		case "forward_date":
			rec.SetTime("forward_date_time", v.Int())
		case "forward_from":
			return true, ref("forward_from_id", models.KindUser, v)
		case "forward_from_chat":
			return true, ref("forward_from_chat_id", models.KindChat, v)
		case "forward_from_message_id", "message_thread_id":
			rec.Set(key, intString(v))
		case "from":
			return true, ref("from_id", models.KindUser, v)
		case "message_id":
			rec.ID = intString(v)
			rec.Set("id", rec.ID)
		case "new_chat_member":
			return true, ref("new_chat_member_id", models.KindUser, v)
		case "new_chat_photo":
			return true, largest("new_chat_photo_id", v)
		case "photo":
			return true, largest("photo_file_id", v)
		case "reply_markup":
			return true, ref("button_list_id", models.KindButtonList, v)
		case "reply_to_message":
			return true, ref("reply_to_message_id", models.KindMessage, v)
		case "sender_chat":
			return true, ref("sender_chat_id", models.KindChat, v)
		case "sticker":
			return true, ref("sticker_id", models.KindFile, v)
		case "entities", "caption_entities", "forward_origin", "link_preview_options",
			"new_chat_members", "new_chat_participant":
			// дублируют другие поля или не нужны
		default:
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if rec.ID == "" {
		return nil, &SchemaError{Kind: models.KindMessage, Key: "message_id"}
	}

	ev := events.MessageArrived{
		MessageID: parseInt(rec.ID),
		ChatID:    parseInt(rec.Fields["chat_id"]),
	}
	if err := n.save(ctx, rec, ev); err != nil {
		return nil, err
	}
	return rec, nil
}

// parseChannelPost разбирает пост канала
func (n *Normalizer) parseChannelPost(ctx context.Context, obj gjson.Result) (*models.Record, error) {
	if rec, ok := n.existing(models.KindChannelPost, obj.Get("message_id")); ok {
		return rec, nil
	}

	rec := &models.Record{Kind: models.KindChannelPost, Fields: map[string]string{}}
	ref := func(field string, kind models.Kind, v gjson.Result) error {
		child, err := n.normalize(ctx, kind, v)
		if err != nil {
			return fmt.Errorf("channel post %s: %w", field, err)
		}
		rec.Set(field, child.ID)
		return nil
	}

	err := n.walk(models.KindChannelPost, obj, func(key string, v gjson.Result) (bool, error) {
		switch key {
		case "caption", "text", "media_group_id", "author_signature":
			rec.Set(key, v.String())
		case "chat":
			return true, ref("chat_id", models.KindChat, v)
		case "date":
			rec.SetTime("date_time", v.Int())
		case "edit_date":
			rec.SetTime("edit_date_time", v.Int())
		case "document":
			return true, ref("document_file_id", models.KindFile, v)
		case "message_id":
			rec.ID = intString(v)
			rec.Set("id", rec.ID)
			rec.Set("message_id", rec.ID)
		case "photo":
			last, ok := lastOf(v)
			if !ok {
				return true, &SchemaError{Kind: models.KindFile, Key: "file_id"}
			}
			return true, ref("photo_file_id", models.KindFile, last)
		case "sender_chat":
			return true, ref("sender_chat_id", models.KindChat, v)
		case "entities", "caption_entities":
		default:
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if rec.ID == "" {
		return nil, &SchemaError{Kind: models.KindChannelPost, Key: "message_id"}
	}

	ev := events.ChannelPostArrived{
		PostID: parseInt(rec.ID),
		ChatID: parseInt(rec.Fields["chat_id"]),
	}
	if err := n.save(ctx, rec, ev); err != nil {
		return nil, err
	}
	return rec, nil
}
