package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ConsoleLogger пишет сообщения в консоль как есть, без времени и уровня.
// Вся разметка (эмодзи, рамки) остается за вызывающим кодом.
type ConsoleLogger struct {
	out      io.Writer
	logLevel string
}

// NewConsoleLogger создает консольный логгер с фильтром по уровню
func NewConsoleLogger(logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		out:      os.Stdout,
		logLevel: strings.ToLower(logLevel),
	}
}

// Debug логирует отладочное сообщение
func (l *ConsoleLogger) Debug(format string, args ...interface{}) {
	l.print("debug", format, args...)
}

// Info логирует информационное сообщение
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.print("info", format, args...)
}

// Warning логирует предупреждение
func (l *ConsoleLogger) Warning(format string, args ...interface{}) {
	l.print("warning", format, args...)
}

// Error логирует ошибку
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.print("error", format, args...)
}

// Success логирует успешное выполнение
func (l *ConsoleLogger) Success(format string, args ...interface{}) {
	l.print("info", format, args...)
}

// Close ничего не делает: stdout не закрываем
func (l *ConsoleLogger) Close() error {
	return nil
}

func (l *ConsoleLogger) print(level, format string, args ...interface{}) {
	if !shouldLog(l.logLevel, level) {
		return
	}
	fmt.Fprintf(l.out, format+"\n", args...)
}
