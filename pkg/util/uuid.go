package util

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/google/uuid"
)

// NamespaceBMP scopes content ids so equal bytes from another tool never
// collide with ours.
var NamespaceBMP = uuid.NewMD5(uuid.NameSpaceURL, []byte("https://github.com/jpfielding/bmp.go"))

// Md5ThenHex is a quick hasher
func Md5ThenHex(value []byte) string {
	hasher := md5.New()
	hasher.Write(value)
	return hex.EncodeToString(hasher.Sum(nil))
}

// ContentID is a stable name based (v3) uuid for an encoded file, so two
// byte-identical bitmaps always report the same id.
func ContentID(encoded []byte) string {
	return uuid.NewMD5(NamespaceBMP, encoded).String()
}

// RunID tags the log records of one invocation.
func RunID() string {
	return uuid.NewString()
}
