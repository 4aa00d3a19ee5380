// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
	"os"

	tml "github.com/BurntSushi/toml"
)

//Config 配置
type Config struct {
	Title   string     `toml:"Title"`
	Log     *Log       `toml:"log"`
	Store   *Store     `toml:"store"`
	Exec    *Exec      `toml:"exec"`
	Genesis []*Genesis `toml:"genesis"`
}

//Log 日志配置
type Log struct {
	Loglevel        string `toml:"loglevel"`
	LogConsoleLevel string `toml:"logConsoleLevel"`
	LogFile         string `toml:"logFile"`
	MaxFileSize     uint32 `toml:"maxFileSize"`
	MaxBackups      uint32 `toml:"maxBackups"`
	MaxAge          uint32 `toml:"maxAge"`
	LocalTime       bool   `toml:"localTime"`
	Compress        bool   `toml:"compress"`
	CallerFile      bool   `toml:"callerFile"`
	CallerFunction  bool   `toml:"callerFunction"`
}

//Store 状态数据库配置
type Store struct {
	Name    string `toml:"name"`
	Driver  string `toml:"driver"`
	DbPath  string `toml:"dbPath"`
	DbCache int32  `toml:"dbCache"`
}

//Exec 执行器配置
type Exec struct {
	Symbol string `toml:"symbol"`
}

//Genesis 创世分配, amount 单位为币
type Genesis struct {
	Addr   string `toml:"addr"`
	Amount string `toml:"amount"`
}

//ConfigSubModule 执行器子配置, 按执行器名称保存 json 编码
type ConfigSubModule struct {
	Exec map[string][]byte
}

type subModule struct {
	Exec map[string]interface{}
}

func initCfgString(cfgstring string) (*Config, error) {
	var cfg Config
	if _, err := tml.Decode(cfgstring, &cfg); err != nil {
		return nil, err
	}
	fillDefault(&cfg)
	return &cfg, nil
}

func fillDefault(cfg *Config) {
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	if cfg.Store == nil {
		cfg.Store = &Store{Name: "state", Driver: "memdb"}
	}
	if cfg.Exec == nil {
		cfg.Exec = &Exec{}
	}
	if cfg.Exec.Symbol == "" {
		cfg.Exec.Symbol = DefaultCoinSymbol
	}
}

// InitCfg 初始化配置
func InitCfg(path string) (*Config, *ConfigSubModule) {
	return InitCfgString(readFile(path))
}

// InitCfgString 从字符串初始化配置, 配置错误时 panic
func InitCfgString(cfgstring string) (*Config, *ConfigSubModule) {
	cfg, err := initCfgString(cfgstring)
	if err != nil {
		panic(err)
	}
	sub, err := initSubModuleString(cfgstring)
	if err != nil {
		panic(err)
	}
	return cfg, sub
}

//ReadFile 读取配置文件
func ReadFile(path string) string {
	return readFile(path)
}

func readFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	return string(data)
}

func initSubModuleString(cfgstring string) (*ConfigSubModule, error) {
	var cfg subModule
	if _, err := tml.Decode(cfgstring, &cfg); err != nil {
		return nil, err
	}
	return &ConfigSubModule{Exec: parseItem(cfg.Exec)}, nil
}

func parseItem(data map[string]interface{}) map[string][]byte {
	subconfig := make(map[string][]byte)
	if len(data) == 0 {
		return subconfig
	}
	for key := range data {
		if key == "sub" {
			subcfg := data[key].(map[string]interface{})
			for k := range subcfg {
				subconfig[k], _ = json.Marshal(subcfg[k])
			}
		}
	}
	return subconfig
}

//MustDecodeSubConfig 解析子配置, 为空时保持 v 的默认值
func MustDecodeSubConfig(data []byte, v interface{}) {
	if len(data) == 0 {
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		panic(err)
	}
}
