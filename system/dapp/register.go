// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"sort"

	"github.com/33cn/slotmachine/common/address"
	"github.com/33cn/slotmachine/common/log"
	"github.com/33cn/slotmachine/types"
	metrics "github.com/rcrowley/go-metrics"
)

var elog = log.New("module", "execs")

// DriverCreate 创建一个新的驱动实例, 每个执行器持有自己的实例
type DriverCreate func() Driver

type driverEntry struct {
	create DriverCreate
	height int64
	addr   string
}

var (
	drivers  = make(map[string]*driverEntry)
	registry = metrics.NewRegistry()
)

// Register 注册驱动, height 为开始生效的高度
func Register(name string, create DriverCreate, height int64) {
	if create == nil {
		panic("Execute: Register driver is nil")
	}
	if name == "" {
		panic("Execute: Register empty driver name")
	}
	if _, dup := drivers[name]; dup {
		panic("Execute: Register called twice for driver " + name)
	}
	drivers[name] = &driverEntry{
		create: create,
		height: height,
		addr:   address.ExecAddress(name),
	}
}

func (e *driverEntry) enabled(height int64) bool {
	return height == -1 || height >= e.height
}

// LoadDriver 创建名称对应的驱动, height 为 -1 时忽略生效高度
func LoadDriver(name string, height int64) (Driver, error) {
	e, ok := drivers[name]
	if !ok || !e.enabled(height) {
		elog.Debug("LoadDriver", "driver", name, "height", height)
		return nil, types.ErrUnRegistedDriver
	}
	return e.create(), nil
}

// ListDrivers 已注册的驱动名称
func ListDrivers() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsDriverAddress 地址是否属于某个在 height 生效的驱动
func IsDriverAddress(addr string, height int64) bool {
	for _, e := range drivers {
		if e.addr == addr {
			return e.enabled(height)
		}
	}
	return false
}

// ExecAddress 执行器地址
func ExecAddress(name string) string {
	if e, ok := drivers[name]; ok {
		return e.addr
	}
	return address.ExecAddress(name)
}

// MetricsRegistry 执行器共享的指标注册表
func MetricsRegistry() metrics.Registry {
	return registry
}
