package logging

import "strings"

// Level is the severity of a log entry, ordered from most to least verbose.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"trace", "debug", "info", "warn", "error", "fatal"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "info"
}

// ParseLevel maps a configuration string onto a Level. The empty string is
// info and "warning" is accepted for warn. Unknown values report false.
func ParseLevel(value string) (Level, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "":
		return LevelInfo, true
	case "warning":
		return LevelWarn, true
	}
	for i, name := range levelNames {
		if name == value {
			return Level(i), true
		}
	}
	return LevelInfo, false
}
