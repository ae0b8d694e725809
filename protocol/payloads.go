package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/iwtcode/rotaprintAdapter/models"
)

// SettingsFetch - ответ на FTS: текущие настройки и, в первой части сессии, заводские.
type SettingsFetch struct {
	Current     map[string]string
	Defaults    map[string]string
	HasDefaults bool
}

// ParseSettingsFetch разбирает ответ FTS вида `{current}~<>~{defaults}`.
// Вторая часть необязательна.
func ParseSettingsFetch(payload string) (*SettingsFetch, error) {
	parts := strings.SplitN(payload, SettingsSeparator, 2)

	current, err := decodeFlatObject(parts[0])
	if err != nil {
		return nil, fmt.Errorf("parse current settings: %w", err)
	}
	res := &SettingsFetch{Current: current}

	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		defaults, err := decodeFlatObject(parts[1])
		if err != nil {
			return nil, fmt.Errorf("parse default settings: %w", err)
		}
		res.Defaults = defaults
		res.HasDefaults = true
	}
	return res, nil
}

// EncodeSettings сериализует плоскую таблицу настроек для DBS.
func EncodeSettings(values map[string]string) (string, error) {
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode settings: %w", err)
	}
	return string(data), nil
}

// ParseValueReply разбирает ответ RQV: вложенный конверт {command: переменная, payload: значение}.
func ParseValueReply(payload string) (variable, value string, err error) {
	env, err := Decode(payload)
	if err != nil {
		return "", "", err
	}
	return string(env.Command), env.Payload, nil
}

// ParseStatus разбирает ответ GCS в таблицу поле -> значение.
func ParseStatus(payload string) (map[string]string, error) {
	status, err := decodeFlatObject(payload)
	if err != nil {
		return nil, fmt.Errorf("parse status: %w", err)
	}
	return status, nil
}

// SplitLogChunk делит порцию журнала на строки, пустые строки отбрасываются.
func SplitLogChunk(payload string) []string {
	raw := strings.Split(payload, LogLineSeparator)
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// ParseLogLine разбирает строку формата `время<~>УРОВЕНЬ<~>сообщение`.
// Строки другого формата попадают в журнал как PLAIN целиком.
func ParseLogLine(line string) models.LogEntry {
	fields := strings.SplitN(line, LogFieldSeparator, 3)
	if len(fields) != 3 {
		return models.LogEntry{Severity: models.SeverityPlain, Message: line}
	}

	entry := models.LogEntry{
		Timestamp: fields[0],
		Message:   fields[2],
	}
	switch sev := models.Severity(strings.TrimSpace(fields[1])); sev {
	case models.SeverityInfo, models.SeverityWarning, models.SeverityError:
		entry.Severity = sev
	default:
		entry.Severity = models.SeverityPlain
	}
	return entry
}

// SortedKeys возвращает ключи таблицы в детерминированном порядке.
func SortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func decodeFlatObject(text string) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(strings.TrimSpace(text))))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("expected JSON object")
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = Coerce(v)
	}
	return out, nil
}

// Coerce приводит значение JSON к строке так же, как его показывает консоль:
// 250.0 -> "250", true -> "true", null -> "".
func Coerce(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
