package scheduler

import "context"

// Inline выполняет работу и продолжение синхронно в вызывающей горутине.
// Используется в тестах, где сетевые вызовы замоканы.
type Inline struct {
	Calls []string
}

// Go выполняет work и сразу его продолжение
func (i *Inline) Go(name string, work Work) {
	i.Calls = append(i.Calls, name)
	ctx := context.Background()
	if cont := work(ctx); cont != nil {
		cont(ctx)
	}
}
