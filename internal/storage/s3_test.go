package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildObjectKey(t *testing.T) {
	key := BuildObjectKey("profile.JPG")
	assert.True(t, strings.HasPrefix(key, "uploads/"))
	assert.True(t, strings.HasSuffix(key, ".jpg")) // 확장자는 소문자로

	key = BuildObjectKey("archive.tar.gz")
	assert.True(t, strings.HasSuffix(key, ".gz"))

	// 확장자 없는 파일명도 허용
	key = BuildObjectKey("noext")
	assert.True(t, strings.HasPrefix(key, "uploads/"))
	assert.False(t, strings.Contains(strings.TrimPrefix(key, "uploads/"), "."))
}

func TestBuildObjectKeyUnique(t *testing.T) {
	// 같은 파일명이라도 키는 매번 달라야 덮어쓰기가 없다
	assert.NotEqual(t, BuildObjectKey("a.png"), BuildObjectKey("a.png"))
}
