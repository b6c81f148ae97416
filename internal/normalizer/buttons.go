package normalizer

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/iudanet/stickerbot/internal/models"
)

// parseButton сохраняет кнопку под новым синтетическим id
func (n *Normalizer) parseButton(ctx context.Context, obj gjson.Result) (*models.Record, error) {
	fields := map[string]string{}
	err := n.walk(models.KindButton, obj, func(key string, v gjson.Result) (bool, error) {
		switch key {
		case "callback_data", "text", "url":
			fields[key] = v.String()
		default:
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	rec := models.NewIntRecord(models.KindButton, n.store.NextButtonID())
	for k, v := range fields {
		rec.Set(k, v)
	}
	if err := n.save(ctx, rec, nil); err != nil {
		return nil, err
	}
	return rec, nil
}

// parseButtonList раскладывает inline_keyboard в поля row_R_col_C_button_id
func (n *Normalizer) parseButtonList(ctx context.Context, obj gjson.Result) (*models.Record, error) {
	keyboard := obj.Get("inline_keyboard")
	rows := keyboard.Array()
	if !keyboard.IsArray() || len(rows) == 0 {
		return nil, &SchemaError{Kind: models.KindButtonList, Key: "inline_keyboard"}
	}

	fields := map[string]string{"num_rows": fmt.Sprint(len(rows))}
	for r, row := range rows {
		cols := row.Array()
		if len(cols) == 0 {
			return nil, &SchemaError{Kind: models.KindButtonList, Key: fmt.Sprintf("inline_keyboard[%d]", r)}
		}
		fields[fmt.Sprintf("row_%d_num_cols", r)] = fmt.Sprint(len(cols))
		for c, col := range cols {
			if !col.IsObject() {
				return nil, &SchemaError{Kind: models.KindButtonList, Key: fmt.Sprintf("inline_keyboard[%d][%d]", r, c)}
			}
			button, err := n.parseButton(ctx, col)
			if err != nil {
				return nil, fmt.Errorf("button list row %d col %d: %w", r, c, err)
			}
			fields[fmt.Sprintf("row_%d_col_%d_button_id", r, c)] = button.ID
		}
	}

	obj.ForEach(func(k, _ gjson.Result) bool {
		if k.String() != "inline_keyboard" {
			n.logger.Warn("Unknown key skipped", "kind", string(models.KindButtonList), "key", k.String())
		}
		return true
	})

	rec := models.NewIntRecord(models.KindButtonList, n.store.NextButtonListID())
	for k, v := range fields {
		rec.Set(k, v)
	}
	if err := n.save(ctx, rec, nil); err != nil {
		return nil, err
	}
	return rec, nil
}
