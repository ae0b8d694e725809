package console

import "github.com/iwtcode/rotaprintAdapter/models"

// LogBuffer - ограниченная очередь строк журнала, старые строки вытесняются первыми.
type LogBuffer struct {
	entries  []models.LogEntry
	consumed int
}

// Append добавляет строки и обрезает буфер до limit. Возвращает число вытесненных.
func (b *LogBuffer) Append(limit int, entries ...models.LogEntry) int {
	b.entries = append(b.entries, entries...)
	b.consumed += len(entries)
	return b.Trim(limit)
}

// Trim удаляет самые старые строки сверх limit.
func (b *LogBuffer) Trim(limit int) int {
	if limit < 0 {
		limit = 0
	}
	excess := len(b.entries) - limit
	if excess <= 0 {
		return 0
	}
	kept := make([]models.LogEntry, limit)
	copy(kept, b.entries[excess:])
	b.entries = kept
	return excess
}

// Entries возвращает копию содержимого, от старых к новым.
func (b *LogBuffer) Entries() []models.LogEntry {
	out := make([]models.LogEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

func (b *LogBuffer) Len() int { return len(b.entries) }

// Consumed - сколько строк получено с бэкенда за сессию. Счетчик только растет.
func (b *LogBuffer) Consumed() int { return b.consumed }

// Reset очищает буфер и счетчик в начале новой сессии.
func (b *LogBuffer) Reset() {
	b.entries = nil
	b.consumed = 0
}
