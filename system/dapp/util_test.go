package dapp

import (
	"testing"

	dbm "github.com/33cn/slotmachine/common/db"
	"github.com/33cn/slotmachine/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVCreator(t *testing.T) {
	mem, err := dbm.NewGoMemDB("kvcreator", "", 0)
	require.NoError(t, err)
	c := NewKVCreator(kvdb{mem})
	c.Add([]byte("a"), []byte("1"))
	c.AddKV([]byte("b"), []byte("2"))
	c.AddEncode([]byte("c"), &echo{Msg: "x"})
	c.AddListNoPrefix([]*types.KeyValue{{Key: []byte("d")}})
	c.AddLog(7, &echo{Msg: "log"})
	c.AddReceipt(&types.Receipt{KV: []*types.KeyValue{{Key: []byte("e")}}, Logs: []*types.ReceiptLog{{Ty: 8}}})
	c.AddReceipt(nil)

	assert.Len(t, c.KVList(), 5)
	receipt, err := c.Receipt()
	require.NoError(t, err)
	assert.Equal(t, int32(types.ExecOk), receipt.Ty)
	require.Len(t, receipt.Logs, 2)
	var e echo
	require.NoError(t, types.Decode(receipt.Logs[0].Log, &e))
	assert.Equal(t, "log", e.Msg)

	v, err := mem.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
	//AddKV 不写入
	_, err = mem.Get([]byte("b"))
	assert.Equal(t, dbm.ErrNotFoundInDb, err)
	v, err = mem.Get([]byte("c"))
	require.NoError(t, err)
	require.NoError(t, types.Decode(v, &e))
	assert.Equal(t, "x", e.Msg)
}
