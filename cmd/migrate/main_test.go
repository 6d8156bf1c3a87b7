package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskDatabaseURL(t *testing.T) {
	assert.Equal(t, "postgres://app:xxxxx@db:5432/chat?sslmode=disable",
		maskDatabaseURL("postgres://app:s3cret@db:5432/chat?sslmode=disable"))
	assert.Equal(t, "***", maskDatabaseURL("host=db dbname=chat"))
}
