package content_test

import (
	"errors"
	"io/fs"
	"syscall"
	"testing"

	"devserve/feature/content"

	"github.com/stretchr/testify/assert"
)

func TestErrorFields(t *testing.T) {
	t.Run("PathError", func(t *testing.T) {
		err := &fs.PathError{Op: "open", Path: "/srv/secret", Err: syscall.EACCES}
		fields := content.ErrorFields(err)
		assert.Equal(t, "op: open", fields[0])
		assert.Equal(t, "path: /srv/secret", fields[1])
		assert.Equal(t, "error: "+syscall.EACCES.Error(), fields[2])
		assert.Len(t, fields, 4)
		assert.Contains(t, fields[3], "errno: ")
	})

	t.Run("PlainError", func(t *testing.T) {
		assert.Equal(t, []string{"error: boom"}, content.ErrorFields(errors.New("boom")))
	})

	t.Run("Nil", func(t *testing.T) {
		assert.Nil(t, content.ErrorFields(nil))
	})
}

func TestBodies(t *testing.T) {
	assert.Equal(t, "404 Not Found\n\n/srv/x.txt", content.NotFoundBody("/srv/x.txt"))

	body := content.FailureBody("/srv/dir", &fs.PathError{Op: "read", Path: "/srv/dir", Err: errors.New("is a directory")})
	assert.Equal(t, "500 Internal Server Error\n\n/srv/dir\n\nop: read\npath: /srv/dir\nerror: is a directory", body)
}
