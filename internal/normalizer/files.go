package normalizer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/iudanet/stickerbot/internal/events"
	"github.com/iudanet/stickerbot/internal/models"
)

// parseFile разбирает файл. В отличие от остальных сущностей файлы сливаются:
// новые поля добавляются, расхождения логируются, первое значение остается.
// file_path временный и в запись не попадает.
func (n *Normalizer) parseFile(ctx context.Context, obj gjson.Result) (*models.Record, error) {
	fields := map[string]string{}
	err := n.walk(models.KindFile, obj, func(key string, v gjson.Result) (bool, error) {
		switch key {
		case "emoji", "file_name", "file_unique_id", "mime_type", "set_name", "type", "custom_emoji_id":
			fields[key] = v.String()
		case "duration":
			fields[key] = strconv.FormatFloat(v.Float(), 'f', -1, 64)
		case "file_id":
			fields[key] = v.String()
			fields["id"] = v.String()
		case "file_size", "height", "width":
			fields[key] = intString(v)
		case "is_animated", "is_video", "needs_repainting":
			fields[key] = boolString(v)
		case "premium_animation":
			premium, err := n.parseFile(ctx, v)
			if err != nil {
				return true, fmt.Errorf("file premium_animation: %w", err)
			}
			fields["premium_animation_file_id"] = premium.ID
		case "file_path", "thumb", "thumbnail":
			// file_path забирает NormalizeFileResult
		default:
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	id := fields["id"]
	if id == "" {
		return nil, &SchemaError{Kind: models.KindFile, Key: "file_id"}
	}

	rec, known := n.store.Get(models.KindFile, id)
	if !known {
		rec = models.NewRecord(models.KindFile, id)
		for k, v := range fields {
			rec.Set(k, v)
		}
		if err := n.save(ctx, rec, events.FileArrived{FileID: id}); err != nil {
			return nil, err
		}
		return rec, nil
	}

	changed := false
	for k, v := range fields {
		old, ok := rec.Fields[k]
		if !ok {
			rec.Set(k, v)
			changed = true
			continue
		}
		if old != v {
			w := IntegrityWarning{FileID: id, Key: k, Old: old, New: v}
			n.logger.Warn("File integrity warning",
				"file_id", w.FileID,
				"key", w.Key,
				"old", w.Old,
				"new", w.New,
			)
		}
	}
	if changed {
		if err := n.store.Put(ctx, rec); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// parseStickerSet разбирает набор стикеров; каждый стикер сохраняется как файл,
// порядок file_id в наборе совпадает с порядком в ответе
func (n *Normalizer) parseStickerSet(ctx context.Context, obj gjson.Result) (*models.Record, error) {
	if rec, ok := n.existing(models.KindStickerSet, obj.Get("name")); ok {
		return rec, nil
	}

	rec := &models.Record{Kind: models.KindStickerSet, Fields: map[string]string{}}
	err := n.walk(models.KindStickerSet, obj, func(key string, v gjson.Result) (bool, error) {
		switch key {
		case "contains_masks", "is_animated", "is_video":
			rec.Set(key, boolString(v))
		case "name":
			rec.ID = v.String()
			rec.Set("name", rec.ID)
			rec.Set("id", rec.ID)
		case "sticker_type", "title":
			rec.Set(key, v.String())
		case "stickers":
			for i, sticker := range v.Array() {
				file, err := n.parseFile(ctx, sticker)
				if err != nil {
					return true, fmt.Errorf("sticker set sticker %d: %w", i, err)
				}
				rec.FileIDs = append(rec.FileIDs, file.ID)
			}
		case "thumb", "thumbnail":
		default:
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if rec.ID == "" {
		return nil, &SchemaError{Kind: models.KindStickerSet, Key: "name"}
	}

	if err := n.save(ctx, rec, events.StickerSetInfoArrived{Name: rec.ID}); err != nil {
		return nil, err
	}
	return rec, nil
}
