package normalizer

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/iudanet/stickerbot/internal/events"
	"github.com/iudanet/stickerbot/internal/models"
)

const (
	updateTypeMessage     = "message"
	updateTypeChannelPost = "channel post"
	updateTypeChatMember  = "my_chat_member"
)

// parseUpdate разбирает одно обновление из getUpdates
func (n *Normalizer) parseUpdate(ctx context.Context, obj gjson.Result) (*models.Record, error) {
	if rec, ok := n.existing(models.KindUpdate, obj.Get("update_id")); ok {
		return rec, nil
	}

	fields := map[string]string{}
	err := n.walk(models.KindUpdate, obj, func(key string, v gjson.Result) (bool, error) {
		switch key {
		case "channel_post", "edited_channel_post":
			post, err := n.parseChannelPost(ctx, v)
			if err != nil {
				return true, fmt.Errorf("update %s: %w", key, err)
			}
			fields["type"] = updateTypeChannelPost
			fields["message_id"] = post.ID
			copyField(fields, post, "chat_id")
		case "message", "edited_message":
			msg, err := n.parseMessage(ctx, v)
			if err != nil {
				return true, fmt.Errorf("update %s: %w", key, err)
			}
			fields["type"] = updateTypeMessage
			fields["message_id"] = msg.ID
			copyField(fields, msg, "chat_id")
		case "my_chat_member":
			member, err := n.parseChatMember(ctx, v)
			if err != nil {
				return true, fmt.Errorf("update %s: %w", key, err)
			}
			fields["type"] = updateTypeChatMember
			fields["my_chat_member_id"] = member.ID
			copyField(fields, member, "chat_id")
		case "update_id":
			fields["id"] = intString(v)
		default:
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	id, ok := fields["id"]
	if !ok {
		return nil, &SchemaError{Kind: models.KindUpdate, Key: "update_id"}
	}
	rec := models.NewRecord(models.KindUpdate, id)
	for k, v := range fields {
		rec.Set(k, v)
	}

	ev := events.UpdateArrived{UpdateID: parseInt(id), ChatID: parseInt(fields["chat_id"])}
	if err := n.save(ctx, rec, ev); err != nil {
		return nil, err
	}
	return rec, nil
}

func copyField(dst map[string]string, src *models.Record, key string) {
	if v, ok := src.Get(key); ok {
		dst[key] = v
	}
}
