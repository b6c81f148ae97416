package stickers

// State стадия сборки набора
type State int

const (
	StateNone State = iota
	StateAwaitingInfo
	StateAwaitingFiles
	StatePackaging
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateAwaitingInfo:
		return "awaiting_info"
	case StateAwaitingFiles:
		return "awaiting_files"
	case StatePackaging:
		return "packaging"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "none"
	}
}

// Active сообщает, что сборка идет
func (s State) Active() bool {
	return s == StateAwaitingInfo || s == StateAwaitingFiles || s == StatePackaging
}

// Event вход конечного автомата
type Event interface {
	pipelineEvent()
}

// Requested запрос набора
type Requested struct{}

// InfoArrived метаданные набора сохранены
type InfoArrived struct{}

// InfoFailed протокол не знает такой набор
type InfoFailed struct {
	Reason string
}

// FileArrived байты файла набора на диске
type FileArrived struct {
	FileID string
}

// FileFailed файл набора не удалось скачать
type FileFailed struct {
	FileID string
	Reason string
}

func (Requested) pipelineEvent()   {}
func (InfoArrived) pipelineEvent() {}
func (InfoFailed) pipelineEvent()  {}
func (FileArrived) pipelineEvent() {}
func (FileFailed) pipelineEvent()  {}

type job struct {
	remaining map[string]struct{}
	reason    string
	state     State
}
