package appliance

import "errors"

// ErrInvalidWindows is returned when an appliance's declared switch-on
// windows cannot possibly contain its functioning time. This is fatal at
// load time — the appliance table itself is wrong, not the random draw.
var ErrInvalidWindows = errors.New("appliance: windows cannot contain functioning time")

// ErrInsufficientWindow is returned when a single day's random draw could
// not find enough free space inside the appliance's windows to place its
// switch-on events. Callers should log and skip the appliance for that day
// rather than treat it as fatal.
var ErrInsufficientWindow = errors.New("appliance: insufficient window to place switch-on events")

// ErrNoPowerSamples is returned when an appliance declares zero power
// values and isn't a constant-power appliance that can be broadcast.
var ErrNoPowerSamples = errors.New("appliance: no power samples and power is not constant")
