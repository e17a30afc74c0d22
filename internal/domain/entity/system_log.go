package entity

import "time"

// LogModule is the subsystem that produced a system log line
type LogModule string

const (
	LogModuleAuth    LogModule = "AUTH"
	LogModuleDB      LogModule = "DB"
	LogModuleAPI     LogModule = "API"
	LogModuleSystem  LogModule = "SYSTEM"
	LogModuleNetwork LogModule = "NETWORK"
	LogModuleSec     LogModule = "SEC"
)

// Valid reports whether m is one of the enumerated modules
func (m LogModule) Valid() bool {
	switch m {
	case LogModuleAuth, LogModuleDB, LogModuleAPI, LogModuleSystem, LogModuleNetwork, LogModuleSec:
		return true
	}
	return false
}

// LogStatus is the outcome tag of a system log line
type LogStatus string

const (
	LogStatusOK   LogStatus = "OK"
	LogStatusWarn LogStatus = "WARN"
	LogStatusErr  LogStatus = "ERR"
)

// Valid reports whether s is one of the enumerated statuses
func (s LogStatus) Valid() bool {
	return s == LogStatusOK || s == LogStatusWarn || s == LogStatusErr
}

// SystemLog is one line of the operational log feed
type SystemLog struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Module    LogModule `json:"module"`
	Message   string    `json:"message"`
	Status    LogStatus `json:"status"`
}

// SecurityLevel is the global threat level toggled by the simulation driver
type SecurityLevel string

const (
	SecurityLevelLow      SecurityLevel = "Low"
	SecurityLevelCritical SecurityLevel = "Critical"
)
