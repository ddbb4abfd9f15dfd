// Package stay holds the date rules shared by room availability and booking creation.
package stay

import (
	"fmt"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"time"
)

const (
	MsgCheckInInPast    = "Check IN date must be before today"
	MsgCheckOutBeforeIn = "Check OUT date must be before check IN date"
	MsgCheckInEqualsOut = "Check IN date cannot be equal to check OUT date"
)

const hoursPerDay = 24

// Date drops the clock part of t and pins it to UTC so that calendar days compare exactly.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func Parse(value string) (time.Time, error) {
	t, err := time.Parse(constant.DateOnlyFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected %s: %w", value, constant.DateOnlyFormat, err)
	}

	return t, nil
}

// Validate checks a stay against today. Rules are applied in order and the first violation wins.
func Validate(checkIn, checkOut, today time.Time) error {
	checkIn, checkOut, today = Date(checkIn), Date(checkOut), Date(today)

	if checkIn.Before(today) {
		return failure.InvalidState(MsgCheckInInPast)
	}

	if checkOut.Before(checkIn) {
		return failure.InvalidState(MsgCheckOutBeforeIn)
	}

	if checkIn.Equal(checkOut) {
		return failure.InvalidState(MsgCheckInEqualsOut)
	}

	return nil
}

// Nights is the number of whole days between check-in and check-out.
func Nights(checkIn, checkOut time.Time) int64 {
	return int64(Date(checkOut).Sub(Date(checkIn)).Hours()) / hoursPerDay
}
