package boxee

import "strconv"

// Command names understood by the xbmcHttp endpoint
const (
	CmdSendKey                = "SendKey"
	CmdSetVolume              = "SetVolume"
	CmdGetVolume              = "GetVolume"
	CmdGetCurrentlyPlaying    = "GetCurrentlyPlaying"
	CmdMute                   = "mute"
	CmdPause                  = "pause"
	CmdStop                   = "stop"
	CmdPlayNext               = "PlayNext"
	CmdPlayPrev               = "PlayPrev"
	CmdShutdown               = "Shutdown"
	CmdReset                  = "Reset"
	CmdSeekPercentageRelative = "SeekPercentageRelative"
)

// Command is a single control API call: a name and an optional argument.
type Command struct {
	Name string
	Arg  string
}

// Cmd returns a command without an argument.
func Cmd(name string) Command {
	return Command{Name: name}
}

// CmdInt returns a command with a single numeric argument.
func CmdInt(name string, n int) Command {
	return Command{Name: name, Arg: strconv.Itoa(n)}
}

// SendKey returns a SendKey command for the given key code.
func SendKey(code int) Command {
	return CmdInt(CmdSendKey, code)
}

// SetVolume returns a SetVolume command for the given level.
func SetVolume(level int) Command {
	return CmdInt(CmdSetVolume, level)
}

// IsZero reports whether the command has no name.
func (c Command) IsZero() bool {
	return c.Name == ""
}

// String renders the command the way it appears in the request URL.
func (c Command) String() string {
	return c.Name + "(" + c.Arg + ")"
}
