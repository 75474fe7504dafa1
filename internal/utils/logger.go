package utils

import (
	"fmt"
	"log"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
	colorGray   = "\033[90m"
)

func logf(tag, color, component, message string, args ...interface{}) {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	log.Printf("%s[%s]%s %s[%s]%s %s",
		color, tag, colorReset,
		colorCyan, component, colorReset,
		message)
}

func LogInfo(component, message string, args ...interface{}) {
	logf("INFO", colorBlue, component, message, args...)
}

func LogSuccess(component, message string, args ...interface{}) {
	logf("SUCCESS", colorGreen, component, message, args...)
}

func LogWarning(component, message string, args ...interface{}) {
	logf("WARNING", colorYellow, component, message, args...)
}

func LogDebug(component, message string, args ...interface{}) {
	logf("DEBUG", colorPurple, component, message, args...)
}

func LogError(component, message string, err error) {
	if err != nil {
		logf("ERROR", colorRed, component, "%s: %v", message, err)
		return
	}
	logf("ERROR", colorRed, component, message)
}

func LogDB(operation, detail string) {
	log.Printf("%s[DB]%s %s[%s]%s %s",
		colorGray, colorReset,
		colorWhite, operation, colorReset,
		detail)
}

func LogRequest(method, path, accountID string) {
	log.Printf("%s[REQUEST]%s %s%s%s %s | account: %s%s%s",
		colorCyan, colorReset,
		colorWhite, method, colorReset,
		path,
		colorYellow, accountID, colorReset)
}

func LogResponse(path string, statusCode int, duration time.Duration) {
	color := colorGreen
	if statusCode >= 500 {
		color = colorRed
	} else if statusCode >= 400 {
		color = colorYellow
	}
	log.Printf("%s[RESPONSE]%s %s | status: %s%d%s | %v",
		colorGray, colorReset,
		path,
		color, statusCode, colorReset,
		duration)
}
