// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log 日志初始化: 控制台和按大小滚动的文件日志
package log

import (
	"io"
	"os"

	"github.com/33cn/slotmachine/types"
	log15 "github.com/inconshreveable/log15"
	"gopkg.in/natefinch/lumberjack.v2"
)

//DefaultLogFile 没有配置日志时使用的文件
const DefaultLogFile = "logs/slotmachine.log"

var console io.Writer = os.Stdout

//SetLogLevel 只保留控制台日志
func SetLogLevel(logLevel string) {
	log15.Root().SetHandler(consoleHandler(logLevel))
}

//SetFileLog 按配置同时输出到控制台和文件, 未配置文件时只输出到控制台
func SetFileLog(cfg *types.Log) {
	if cfg == nil {
		cfg = &types.Log{LogFile: DefaultLogFile}
	}
	fillDefaultValue(cfg)
	if cfg.LogFile == "" {
		SetLogLevel(cfg.LogConsoleLevel)
		return
	}
	log15.Root().SetHandler(log15.MultiHandler(consoleHandler(cfg.LogConsoleLevel), fileHandler(cfg)))
}

//Discard 丢弃所有日志
func Discard() {
	log15.Root().SetHandler(log15.DiscardHandler())
}

// 默认 error 级别
func fillDefaultValue(cfg *types.Log) {
	if cfg.Loglevel == "" {
		cfg.Loglevel = log15.LvlError.String()
	}
	if cfg.LogConsoleLevel == "" {
		cfg.LogConsoleLevel = log15.LvlError.String()
	}
}

func consoleHandler(level string) log15.Handler {
	format := log15.TerminalFormat()
	if os.PathSeparator == '\\' {
		format = log15.LogfmtFormat()
	}
	return log15.LvlFilterHandler(getLevel(level), log15.StreamHandler(console, format))
}

func fileHandler(cfg *types.Log) log15.Handler {
	w := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    int(cfg.MaxFileSize),
		MaxBackups: int(cfg.MaxBackups),
		MaxAge:     int(cfg.MaxAge),
		LocalTime:  cfg.LocalTime,
		Compress:   cfg.Compress,
	}
	h := log15.StreamHandler(w, log15.LogfmtFormat())
	if cfg.CallerFile {
		h = log15.CallerFileHandler(h)
	}
	if cfg.CallerFunction {
		h = log15.CallerFuncHandler(h)
	}
	return log15.LvlFilterHandler(getLevel(cfg.Loglevel), h)
}

// 配置错误时为 error
func getLevel(level string) log15.Lvl {
	lvl, err := log15.LvlFromString(level)
	if err != nil {
		return log15.LvlError
	}
	return lvl
}

//New 模块日志, ctx 为 key value 对
func New(ctx ...interface{}) log15.Logger {
	return log15.Root().New(ctx...)
}
