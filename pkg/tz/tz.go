package tz

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// Campus is the location used to read date-times submitted without an offset.
// It defaults to UTC until Init is called.
var Campus = time.UTC

// Init loads the named IANA location (e.g. "Asia/Kolkata") into Campus.
func Init(name string) error {
	if name == "" {
		Campus = time.UTC
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("tz: load %s: %w", name, err)
	}
	Campus = loc
	return nil
}
