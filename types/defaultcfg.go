// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

var cfgstring = `
Title="local"

[log]
# 日志级别，支持debug(dbug)/info/warn/error(eror)/crit
loglevel = "debug"
logConsoleLevel = "info"
# 日志文件名，可带目录，所有生成的日志文件都放到此目录下
logFile = "logs/slotmachine.log"
# 单个日志文件的最大值（单位：兆）
maxFileSize = 300
# 最多保存的历史日志文件个数
maxBackups = 100
# 最多保存的历史日志消息（单位：天）
maxAge = 28
# 日志文件名是否使用本地事件（否则使用UTC时间）
localTime = true
# 历史日志文件是否压缩（压缩格式为gz）
compress = true
# 是否打印调用源文件和行号
callerFile = false
# 是否打印调用方法
callerFunction = false

[store]
name="state"
# 支持 memdb, leveldb
driver="memdb"
dbPath="datadir/state"
dbCache=64

[exec]
symbol="coins"

[exec.sub.slotmachine]
# 单位为币, 1币 = 1e9
minBet="0.01"
maxBet="1"
# 单位为秒
minDelay=2

[[exec.sub.slotmachine.tiers]]
threshold="99.5"
multiplier=25
label="JACKPOT"

[[exec.sub.slotmachine.tiers]]
threshold="98"
multiplier=10
label="Big Win"

[[exec.sub.slotmachine.tiers]]
threshold="95"
multiplier=6
label="Great"

[[exec.sub.slotmachine.tiers]]
threshold="90"
multiplier=3
label="Nice"

[[exec.sub.slotmachine.tiers]]
threshold="80"
multiplier=2
label="Win"

[[exec.sub.slotmachine.tiers]]
threshold="65"
multiplier=1
label="Break Even"

[[exec.sub.slotmachine.tiers]]
threshold="0"
multiplier=0
label="Try Again"

[[genesis]]
addr="14KEKbYtKKQm4wMthSK9J4La4nAiidGozt"
amount="1000000"
`

//GetDefaultCfgstring 获取默认配置
func GetDefaultCfgstring() string {
	return cfgstring
}
