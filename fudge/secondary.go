// Copyright 2024 The fudge-go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fudge

import (
	"reflect"
	"time"
)

// registerBuiltinSecondaryTypes wires this package's built-in secondary
// type adapters into d. Currently: time.Time <-> DateTime. Applications
// add their own with TypeDictionary.RegisterSecondaryType.
func registerBuiltinSecondaryTypes(d *TypeDictionary) {
	dateTimeWire, ok := d.registry.ByID(TypeDateTime)
	if !ok {
		panic("fudge: built-in registry missing datetime type")
	}
	d.RegisterSecondaryType(
		reflect.TypeOf(time.Time{}),
		dateTimeWire,
		timeToDateTime,
		dateTimeToTime,
	)
}

func timeToDateTime(v any) (any, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, unknownType("timeToDateTime", "value %T is not a time.Time", v)
	}
	u := t.UTC()
	nanosOfDay := time.Duration(u.Hour())*time.Hour +
		time.Duration(u.Minute())*time.Minute +
		time.Duration(u.Second())*time.Second +
		time.Duration(u.Nanosecond())
	return DateTime{
		Date: Date{Year: int16(u.Year()), Month: uint8(u.Month()), Day: uint8(u.Day())},
		Time: Time{Nanos: int64(nanosOfDay)},
	}, nil
}

func dateTimeToTime(v any) (any, error) {
	dt, ok := v.(DateTime)
	if !ok {
		return nil, unknownType("dateTimeToTime", "value %T is not a DateTime", v)
	}
	if dt.Time.Nanos < 0 || dt.Time.Nanos >= int64(24*time.Hour) {
		return nil, malformedf("dateTimeToTime", "time-of-day %d ns out of range", dt.Time.Nanos)
	}
	base := time.Date(int(dt.Date.Year), time.Month(dt.Date.Month), int(dt.Date.Day), 0, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(dt.Time.Nanos)), nil
}
