package normalizer

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/iudanet/stickerbot/internal/entities"
	"github.com/iudanet/stickerbot/internal/events"
	"github.com/iudanet/stickerbot/internal/models"
)

// Publisher получатель событий о новых сущностях
type Publisher interface {
	Publish(ctx context.Context, ev events.Event)
}

// Normalizer превращает JSON объекты протокола в плоские записи,
// рекурсивно разбирая вложенные объекты и сохраняя каждую запись
type Normalizer struct {
	store     *entities.Store
	publisher Publisher
	logger    *slog.Logger
}

// New создает нормализатор
func New(store *entities.Store, publisher Publisher, logger *slog.Logger) *Normalizer {
	return &Normalizer{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// Normalize определяет тип объекта по набору ключей и разбирает его
func (n *Normalizer) Normalize(ctx context.Context, raw []byte) (*models.Record, error) {
	obj, err := parseObject(raw)
	if err != nil {
		return nil, err
	}
	kind, ok := Detect(obj)
	if !ok {
		return nil, ErrUnknownShape
	}
	return n.normalize(ctx, kind, obj)
}

// NormalizeAs разбирает объект как сущность заданного типа
func (n *Normalizer) NormalizeAs(ctx context.Context, kind models.Kind, raw []byte) (*models.Record, error) {
	obj, err := parseObject(raw)
	if err != nil {
		return nil, err
	}
	return n.normalize(ctx, kind, obj)
}

// NormalizeFileResult разбирает ответ getFile: объединяет запись файла
// и возвращает временный file_path, который не сохраняется
func (n *Normalizer) NormalizeFileResult(ctx context.Context, raw []byte) (*models.Record, string, error) {
	obj, err := parseObject(raw)
	if err != nil {
		return nil, "", err
	}
	path := obj.Get("file_path").String()
	if path == "" {
		return nil, "", &SchemaError{Kind: models.KindFile, Key: "file_path"}
	}
	rec, err := n.parseFile(ctx, obj)
	if err != nil {
		return nil, "", err
	}
	return rec, path, nil
}

func (n *Normalizer) normalize(ctx context.Context, kind models.Kind, obj gjson.Result) (*models.Record, error) {
	switch kind {
	case models.KindUpdate:
		return n.parseUpdate(ctx, obj)
	case models.KindMessage:
		return n.parseMessage(ctx, obj)
	case models.KindUser:
		return n.parseUser(ctx, obj)
	case models.KindChat:
		return n.parseChat(ctx, obj)
	case models.KindFile:
		return n.parseFile(ctx, obj)
	case models.KindStickerSet:
		return n.parseStickerSet(ctx, obj)
	case models.KindButton:
		return n.parseButton(ctx, obj)
	case models.KindButtonList:
		return n.parseButtonList(ctx, obj)
	case models.KindChatMember:
		return n.parseChatMember(ctx, obj)
	case models.KindChannelPost:
		return n.parseChannelPost(ctx, obj)
	default:
		return nil, fmt.Errorf("kind %q: %w", kind, ErrUnknownShape)
	}
}

// Detect определяет тип сущности по присутствию характерных ключей.
// Один и тот же объект чата встречается в сообщениях, постах и изменениях членства,
// поэтому явный тег типа от вызывающего не требуется.
func Detect(obj gjson.Result) (models.Kind, bool) {
	has := func(key string) bool { return obj.Get(key).Exists() }

	switch {
	case has("update_id"):
		return models.KindUpdate, true
	case has("inline_keyboard"):
		return models.KindButtonList, true
	case has("name") && has("stickers"):
		return models.KindStickerSet, true
	case has("file_id"):
		return models.KindFile, true
	case has("old_chat_member") && has("new_chat_member") && has("chat"):
		return models.KindChatMember, true
	case has("message_id") && has("chat"):
		if obj.Get("chat.type").String() == "channel" {
			return models.KindChannelPost, true
		}
		return models.KindMessage, true
	case has("callback_data"):
		return models.KindButton, true
	case has("id") && has("type"):
		return models.KindChat, true
	case has("id"):
		return models.KindUser, true
	default:
		return "", false
	}
}

func parseObject(raw []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, ErrNotObject
	}
	obj := gjson.ParseBytes(raw)
	if !obj.IsObject() {
		return gjson.Result{}, ErrNotObject
	}
	return obj, nil
}

// walk обходит ключи объекта; необработанные ключи логируются и пропускаются
func (n *Normalizer) walk(kind models.Kind, obj gjson.Result, fn func(key string, v gjson.Result) (bool, error)) error {
	var walkErr error
	obj.ForEach(func(k, v gjson.Result) bool {
		handled, err := fn(k.String(), v)
		if err != nil {
			walkErr = err
			return false
		}
		if !handled {
			n.logger.Warn("Unknown key skipped", "kind", string(kind), "key", k.String())
		}
		return true
	})
	return walkErr
}

// existing возвращает уже известную запись; повторная нормализация ее не меняет
func (n *Normalizer) existing(kind models.Kind, id gjson.Result) (*models.Record, bool) {
	if !id.Exists() {
		return nil, false
	}
	return n.store.Get(kind, idString(id))
}

// save сохраняет новую запись и публикует событие о ней
func (n *Normalizer) save(ctx context.Context, rec *models.Record, ev events.Event) error {
	if err := n.store.Put(ctx, rec); err != nil {
		return err
	}
	if ev == nil {
		ev = events.EntityArrived{Kind: rec.Kind, ID: rec.ID}
	}
	n.publisher.Publish(ctx, ev)
	return nil
}

func idString(v gjson.Result) string {
	if v.Type == gjson.String {
		return v.String()
	}
	return strconv.FormatInt(v.Int(), 10)
}

func boolString(v gjson.Result) string {
	return strconv.FormatBool(v.Bool())
}

func intString(v gjson.Result) string {
	return strconv.FormatInt(v.Int(), 10)
}

// lastOf возвращает последний элемент массива (самый крупный размер фото)
func lastOf(v gjson.Result) (gjson.Result, bool) {
	items := v.Array()
	if len(items) == 0 || !items[len(items)-1].IsObject() {
		return gjson.Result{}, false
	}
	return items[len(items)-1], true
}

func parseInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
