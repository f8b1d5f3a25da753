package ofximport

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/golang/glog"
)

// ofxTimePattern matches YYYYMMDD[HHMM[SS[.XXX]]][[gmt offset[:tz name]]].
var ofxTimePattern = regexp.MustCompile(
	`^(?P<year>\d{4})(?P<month>\d{2})(?P<day>\d{2})` +
		`(?:(?P<hour>\d{2})(?P<minute>\d{2})(?P<second>\d{2})?(?:\.\d+)?)?` +
		`(?:\[[+-]?\d+(?:\.\d+)?(?::[^\]]*)?\])?$`)

// ParseTime parses an OFX formatted date time string. The gmt offset and timezone name are
// ignored and the result is the wall clock time as written.
func ParseTime(s string) (civil.DateTime, error) {
	parts := ofxTimePattern.FindStringSubmatch(strings.TrimSpace(s))
	if parts == nil {
		return civil.DateTime{}, &MalformedTimestampError{Value: s}
	}
	glog.V(3).Infof("parts:%q", parts)
	n := make([]int, len(parts))
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		n[i], _ = strconv.Atoi(parts[i])
	}
	dt := civil.DateTime{
		Date: civil.Date{Year: n[1], Month: time.Month(n[2]), Day: n[3]},
		Time: civil.Time{Hour: n[4], Minute: n[5], Second: n[6]},
	}
	if !dt.IsValid() {
		return civil.DateTime{}, &MalformedTimestampError{Value: s}
	}
	return dt, nil
}

// ParseDate parses an OFX formatted date time string and returns only its date.
func ParseDate(s string) (civil.Date, error) {
	dt, err := ParseTime(s)
	if err != nil {
		return civil.Date{}, err
	}
	return dt.Date, nil
}
