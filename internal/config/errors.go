package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrUnknownDBEngine error if db.gormEngine names an unsupported driver.
	ErrUnknownDBEngine = errors.New("config db.gormEngine must be sqlite, mysql or postgres")

	// ErrEmptyImageDir error if images.dir is empty.
	ErrEmptyImageDir = errors.New("config images.dir can not be empty")

	// ErrUnknownDigest error if images.digest names an unsupported algorithm.
	ErrUnknownDigest = errors.New("config images.digest must be sha256 or blake2b")
)
