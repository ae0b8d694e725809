package protocol

// Command - трехбуквенный код команды в конверте.
type Command string

const (
	CmdValueQuery      Command = "RQV" // запрос значения переменной бэкенда (websocket, grbl)
	CmdResetLogCounter Command = "RLC"
	CmdFetchSettings   Command = "FTS"
	CmdCommitSettings  Command = "DBS"
	CmdStatus          Command = "GCS"
	CmdLogTail         Command = "LOG"
	CmdGCode           Command = "GCD"
	CmdPrintSettings   Command = "SET"
	CmdPrint           Command = "PRN"
	CmdHome            Command = "HME"
	CmdFeedHold        Command = "FHD"
	CmdFeedRelease     Command = "FRL"
	CmdRaw             Command = "GRB"
	CmdReconnect       Command = "RCN"
	CmdLighting        Command = "LGT"
	CmdBatch           Command = "BTC"
	CmdEcho            Command = "ECO"
)

var knownCommands = map[Command]struct{}{
	CmdValueQuery:      {},
	CmdResetLogCounter: {},
	CmdFetchSettings:   {},
	CmdCommitSettings:  {},
	CmdStatus:          {},
	CmdLogTail:         {},
	CmdGCode:           {},
	CmdPrintSettings:   {},
	CmdPrint:           {},
	CmdHome:            {},
	CmdFeedHold:        {},
	CmdFeedRelease:     {},
	CmdRaw:             {},
	CmdReconnect:       {},
	CmdLighting:        {},
	CmdBatch:           {},
	CmdEcho:            {},
}

// Known сообщает, входит ли код в набор команд, понятных консоли.
func Known(c Command) bool {
	_, ok := knownCommands[c]
	return ok
}

// Commands возвращает все известные коды.
func Commands() []Command {
	out := make([]Command, 0, len(knownCommands))
	for c := range knownCommands {
		out = append(out, c)
	}
	return out
}

// Сентинелы полезной нагрузки. Смысл каждого зависит от команды.
const (
	Done    = "DONE"
	Error   = "ERROR"
	Force   = "FORCE"
	Check   = "CHECK"
	Confirm = "CONFIRM"
	True    = "True"
	False   = "False"
)

// Переменные, которые можно запросить через RQV
const (
	VarSessions = "websocket"
	VarPrinter  = "grbl"
)

// Разделители, используемые бэкендом внутри полезной нагрузки
const (
	SettingsSeparator = "~<>~"
	LogLineSeparator  = "<*>"
	LogFieldSeparator = "<~>"
)
