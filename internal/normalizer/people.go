package normalizer

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/iudanet/stickerbot/internal/models"
)

// флаги прав участника, сохраняемые как "true"/"false"
var memberFlags = map[string]bool{
	"can_be_edited":          true,
	"can_manage_chat":        true,
	"can_change_info":        true,
	"can_delete_messages":    true,
	"can_invite_users":       true,
	"can_restrict_members":   true,
	"can_pin_messages":       true,
	"can_manage_topics":      true,
	"can_promote_members":    true,
	"can_manage_video_chats": true,
	"can_post_stories":       true,
	"can_edit_stories":       true,
	"can_delete_stories":     true,
	"is_anonymous":           true,
	"can_manage_voice_chats": true,
	"can_post_messages":      true,
	"can_edit_messages":      true,
}

func (n *Normalizer) parseUser(ctx context.Context, obj gjson.Result) (*models.Record, error) {
	if rec, ok := n.existing(models.KindUser, obj.Get("id")); ok {
		return rec, nil
	}

	rec := &models.Record{Kind: models.KindUser, Fields: map[string]string{}}
	err := n.walk(models.KindUser, obj, func(key string, v gjson.Result) (bool, error) {
		switch key {
		case "first_name", "last_name", "language_code", "username":
			rec.Set(key, v.String())
		case "is_bot", "is_premium":
			rec.Set(key, boolString(v))
		case "id":
			rec.ID = intString(v)
			rec.Set("id", rec.ID)
		default:
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if rec.ID == "" {
		return nil, &SchemaError{Kind: models.KindUser, Key: "id"}
	}

	if err := n.save(ctx, rec, nil); err != nil {
		return nil, err
	}
	return rec, nil
}

func (n *Normalizer) parseChat(ctx context.Context, obj gjson.Result) (*models.Record, error) {
	if rec, ok := n.existing(models.KindChat, obj.Get("id")); ok {
		return rec, nil
	}

	rec := &models.Record{Kind: models.KindChat, Fields: map[string]string{}}
	err := n.walk(models.KindChat, obj, func(key string, v gjson.Result) (bool, error) {
		switch key {
		case "first_name", "last_name", "title", "type", "username":
			rec.Set(key, v.String())
		case "all_members_are_administrators", "is_bot", "is_forum":
			rec.Set(key, boolString(v))
		case "id":
			rec.ID = intString(v)
			rec.Set("id", rec.ID)
		default:
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if rec.ID == "" {
		return nil, &SchemaError{Kind: models.KindChat, Key: "id"}
	}

	if err := n.save(ctx, rec, nil); err != nil {
		return nil, err
	}
	return rec, nil
}

// parseChatMember разбирает my_chat_member. Идентификатором служит date.
// Поля old_chat_member и new_chat_member разворачиваются с префиксом.
func (n *Normalizer) parseChatMember(ctx context.Context, obj gjson.Result) (*models.Record, error) {
	if rec, ok := n.existing(models.KindChatMember, obj.Get("date")); ok {
		return rec, nil
	}

	rec := &models.Record{Kind: models.KindChatMember, Fields: map[string]string{}}
	err := n.walk(models.KindChatMember, obj, func(key string, v gjson.Result) (bool, error) {
		switch key {
		case "chat":
			chat, err := n.parseChat(ctx, v)
			if err != nil {
				return true, fmt.Errorf("my_chat_member chat: %w", err)
			}
			rec.Set("chat_id", chat.ID)
		case "date":
			rec.SetTime("date_time", v.Int())
			rec.ID = intString(v)
			rec.Set("id", rec.ID)
		case "from":
			user, err := n.parseUser(ctx, v)
			if err != nil {
				return true, fmt.Errorf("my_chat_member from: %w", err)
			}
			rec.Set("from_id", user.ID)
		case "old_chat_member", "new_chat_member":
			member, err := n.parseMember(ctx, key, v)
			if err != nil {
				return true, err
			}
			for k, val := range member {
				rec.Set(key+"_"+k, val)
			}
		default:
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if rec.ID == "" {
		return nil, &SchemaError{Kind: models.KindChatMember, Key: "date"}
	}

	if err := n.save(ctx, rec, nil); err != nil {
		return nil, err
	}
	return rec, nil
}

// parseMember разбирает описание участника внутри my_chat_member
func (n *Normalizer) parseMember(ctx context.Context, prefix string, obj gjson.Result) (map[string]string, error) {
	fields := map[string]string{}
	kind := models.Kind(string(models.KindChatMember) + "." + prefix)

	err := n.walk(kind, obj, func(key string, v gjson.Result) (bool, error) {
		switch {
		case key == "user":
			user, err := n.parseUser(ctx, v)
			if err != nil {
				return true, fmt.Errorf("my_chat_member %s user: %w", prefix, err)
			}
			fields["user_id"] = user.ID
		case key == "status":
			fields["status"] = v.String()
		case key == "until_date":
			if v.Int() == 0 {
				fields["until_date"] = ""
			} else {
				fields["until_date"] = models.FormatUnix(v.Int())
			}
		case memberFlags[key]:
			fields[key] = boolString(v)
		default:
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if _, ok := fields["status"]; !ok {
		return nil, &SchemaError{Kind: models.KindChatMember, Key: prefix + ".status"}
	}
	return fields, nil
}
