// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"reflect"
	"unicode"
	"unicode/utf8"
)

// Is this an exported - upper case - name?
func isExported(name string) bool {
	rune, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(rune)
}

// ListMethod 列出所有导出的方法
func ListMethod(action interface{}) map[string]reflect.Method {
	typ := reflect.TypeOf(action)
	methods := make(map[string]reflect.Method)
	for m := 0; m < typ.NumMethod(); m++ {
		method := typ.Method(m)
		mname := method.Name
		// Method must be exported.
		if method.PkgPath != "" || !isExported(mname) {
			continue
		}
		methods[mname] = method
	}
	return methods
}

// ExecutorAction action 需要带有类型
type ExecutorAction interface {
	GetTy() int32
}

var nilValue = reflect.ValueOf(nil)

// GetActionValue 根据 Ty 找到 action 名称, 再调用 Get<name> 取出具体的参数
func GetActionValue(action ExecutorAction, tymap map[int32]string, funclist map[string]reflect.Method) (string, reflect.Value) {
	name, ok := tymap[action.GetTy()]
	if !ok {
		return "", nilValue
	}
	funcname := "Get" + name
	if _, ok := funclist[funcname]; !ok {
		return "", nilValue
	}
	val := funclist[funcname].Func.Call([]reflect.Value{reflect.ValueOf(action)})
	if len(val) == 0 || IsNilVal(val[0]) {
		return "", nilValue
	}
	return name, val[0]
}

// IsOK 返回值个数正确并且都可以取出
func IsOK(list []reflect.Value, n int) bool {
	if len(list) != n {
		return false
	}
	for i := 0; i < len(list); i++ {
		if !IsNilVal(list[i]) && !list[i].CanInterface() {
			return false
		}
	}
	return true
}

// IsNilVal nil 或者无效
func IsNilVal(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// CallQueryFunc 调用查询方法, 约定返回 (reply, error)
func CallQueryFunc(this reflect.Value, f reflect.Method, in interface{}) (reply interface{}, err error) {
	valueret := f.Func.Call([]reflect.Value{this, reflect.ValueOf(in)})
	if len(valueret) != 2 {
		return nil, ErrMethodReturnType
	}
	if !valueret[0].CanInterface() {
		return nil, ErrMethodReturnType
	}
	if !valueret[1].CanInterface() {
		return nil, ErrMethodReturnType
	}
	r1 := valueret[0].Interface()
	r2 := valueret[1].Interface()
	if r2 != nil {
		if r, ok := r2.(error); ok {
			return nil, r
		}
		return nil, ErrMethodReturnType
	}
	if IsNilVal(valueret[0]) {
		return nil, nil
	}
	return r1, nil
}
