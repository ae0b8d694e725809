package protocol

import (
	"regexp"
	"strconv"
)

var (
	alarmPattern = regexp.MustCompile(`ALARM:\d{1,2}`)
	errorPattern = regexp.MustCompile(`error:(\d{1,2})`)
)

// Сообщения об ошибках GRBL v1.1 по номеру кода
var grblErrors = map[int]string{
	1:  "Expected command letter",
	2:  "Bad number format",
	3:  "Invalid statement",
	4:  "Value < 0",
	5:  "Setting disabled",
	6:  "Value < 3 usec",
	7:  "EEPROM read fail. Using defaults",
	8:  "Not idle",
	9:  "G-code lock",
	10: "Homing not enabled",
	11: "Line overflow",
	12: "Step rate > 30kHz",
	13: "Check Door",
	14: "Line length exceeded",
	15: "Travel exceeded",
	16: "Invalid jog command",
	17: "Setting disabled",
	20: "Unsupported command",
	21: "Modal group violation",
	22: "Undefined feed rate",
	23: "Invalid gcode ID:23",
	24: "Invalid gcode ID:24",
	25: "Invalid gcode ID:25",
	26: "Invalid gcode ID:26",
	27: "Invalid gcode ID:27",
	28: "Invalid gcode ID:28",
	29: "Invalid gcode ID:29",
	30: "Invalid gcode ID:30",
	31: "Invalid gcode ID:31",
	32: "Invalid gcode ID:32",
	33: "Invalid gcode ID:33",
	34: "Invalid gcode ID:34",
	35: "Invalid gcode ID:35",
	36: "Invalid gcode ID:36",
	37: "Invalid gcode ID:37",
	38: "Invalid gcode ID:38",
}

// MatchAlarm сообщает, содержит ли строка журнала сигнал тревоги прошивки.
func MatchAlarm(line string) bool {
	return alarmPattern.MatchString(line)
}

// MatchFirmwareError извлекает номер ошибки прошивки из строки журнала.
func MatchFirmwareError(line string) (int, bool) {
	m := errorPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return code, true
}

// DescribeError возвращает строку вида "9 - G-code lock" для поля последней ошибки.
func DescribeError(code int) string {
	desc, ok := grblErrors[code]
	if !ok {
		desc = "Unknown error"
	}
	return strconv.Itoa(code) + " - " + desc
}
