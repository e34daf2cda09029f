package sandbox

import (
	"time"

	"github.com/sandscript/go-sandscript/value"
)

var dateMethods = map[string]*value.Builtin{
	"getTime":           {Name: "Date.prototype.getTime", Fn: dateGetTime},
	"valueOf":           {Name: "Date.prototype.valueOf", Fn: dateGetTime},
	"getFullYear":       {Name: "Date.prototype.getFullYear", Fn: dateGetFullYear},
	"getMonth":          {Name: "Date.prototype.getMonth", Fn: dateGetMonth},
	"getDate":           {Name: "Date.prototype.getDate", Fn: dateGetDate},
	"getDay":            {Name: "Date.prototype.getDay", Fn: dateGetDay},
	"getHours":          {Name: "Date.prototype.getHours", Fn: dateGetHours},
	"getMinutes":        {Name: "Date.prototype.getMinutes", Fn: dateGetMinutes},
	"getSeconds":        {Name: "Date.prototype.getSeconds", Fn: dateGetSeconds},
	"getMilliseconds":   {Name: "Date.prototype.getMilliseconds", Fn: dateGetMilliseconds},
	"getTimezoneOffset": {Name: "Date.prototype.getTimezoneOffset", Fn: dateGetTimezoneOffset},
	"toISOString":       {Name: "Date.prototype.toISOString", Fn: dateToISOString},
	"toJSON":            {Name: "Date.prototype.toJSON", Fn: dateToISOString},
	"toString":          {Name: "Date.prototype.toString", Fn: dateToString},

	"setTime":         {Name: "Date.prototype.setTime", Fn: dateSet},
	"setFullYear":     {Name: "Date.prototype.setFullYear", Fn: dateSet},
	"setMonth":        {Name: "Date.prototype.setMonth", Fn: dateSet},
	"setDate":         {Name: "Date.prototype.setDate", Fn: dateSet},
	"setHours":        {Name: "Date.prototype.setHours", Fn: dateSet},
	"setMinutes":      {Name: "Date.prototype.setMinutes", Fn: dateSet},
	"setSeconds":      {Name: "Date.prototype.setSeconds", Fn: dateSet},
	"setMilliseconds": {Name: "Date.prototype.setMilliseconds", Fn: dateSet},
}

func dateOf(recv any) *value.Date {
	d, _ := recv.(*value.Date)
	return d
}

func dateGetTime(recv any, args []any) (any, error) {
	return float64(dateOf(recv).Time.UnixMilli()), nil
}

func dateGetFullYear(recv any, args []any) (any, error) {
	return float64(dateOf(recv).Time.Year()), nil
}

func dateGetMonth(recv any, args []any) (any, error) {
	return float64(int(dateOf(recv).Time.Month()) - 1), nil
}

func dateGetDate(recv any, args []any) (any, error) {
	return float64(dateOf(recv).Time.Day()), nil
}

func dateGetDay(recv any, args []any) (any, error) {
	return float64(int(dateOf(recv).Time.Weekday())), nil
}

func dateGetHours(recv any, args []any) (any, error) {
	return float64(dateOf(recv).Time.Hour()), nil
}

func dateGetMinutes(recv any, args []any) (any, error) {
	return float64(dateOf(recv).Time.Minute()), nil
}

func dateGetSeconds(recv any, args []any) (any, error) {
	return float64(dateOf(recv).Time.Second()), nil
}

func dateGetMilliseconds(recv any, args []any) (any, error) {
	return float64(dateOf(recv).Time.Nanosecond() / int(time.Millisecond)), nil
}

func dateGetTimezoneOffset(recv any, args []any) (any, error) {
	_, offset := dateOf(recv).Time.Zone()
	return float64(-offset / 60), nil
}

func dateToISOString(recv any, args []any) (any, error) {
	return dateOf(recv).Time.UTC().Format("2006-01-02T15:04:05.000Z"), nil
}

func dateToString(recv any, args []any) (any, error) {
	return value.ToString(dateOf(recv)), nil
}

// dateSet backs every setter. Setters are registered as mutable methods and
// rejected by the evaluator before invocation, so the shared body only
// reports the current timestamp.
func dateSet(recv any, args []any) (any, error) {
	return float64(dateOf(recv).Time.UnixMilli()), nil
}
