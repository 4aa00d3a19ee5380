// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHex(t *testing.T) {
	assert.Equal(t, "", ToHex(nil))
	assert.Equal(t, "0x0102ff", ToHex([]byte{1, 2, 255}))

	b, err := FromHex("0x0102ff")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 255}, b)

	b, err = FromHex("102ff")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 255}, b)

	_, err = FromHex("0xzz")
	assert.Error(t, err)

	b, err = FromHex("")
	require.NoError(t, err)
	assert.Len(t, b, 0)
}

func TestSha256(t *testing.T) {
	//echo -n abc | sha256sum
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	assert.Equal(t, want, HashHex(Sha256([]byte("abc"))))

	concat := Sha256Concat([]byte("a"), []byte("b"), nil, []byte("c"))
	assert.Equal(t, want, HashHex(concat[:]))
}

func TestSha2Sum(t *testing.T) {
	once := Sha256([]byte("abc"))
	twice := Sha2Sum([]byte("abc"))
	assert.Equal(t, Sha256(once), twice[:])
}

func TestRimp160AfterSha256(t *testing.T) {
	h1 := Rimp160AfterSha256([]byte("abc"))
	h2 := Rimp160AfterSha256([]byte("abc"))
	h3 := Rimp160AfterSha256([]byte("abd"))
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
}

func TestCopyBytes(t *testing.T) {
	assert.Nil(t, CopyBytes(nil))
	src := []byte{1, 2, 3}
	dst := CopyBytes(src)
	src[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, dst)
}
