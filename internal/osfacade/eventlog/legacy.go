//go:build windows

package eventlog

import (
	"encoding/binary"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/billyoneal/instalog-go/internal/oserr"
	"github.com/billyoneal/instalog-go/internal/osfacade/library"
	"github.com/billyoneal/instalog-go/internal/osfacade/registry"
)

var (
	advapi32              = windows.NewLazySystemDLL("advapi32.dll")
	procOpenEventLogW     = advapi32.NewProc("OpenEventLogW")
	procCloseEventLog     = advapi32.NewProc("CloseEventLog")
	procReadEventLogW     = advapi32.NewProc("ReadEventLogW")
	procGetOldestEventLog = advapi32.NewProc("GetOldestEventLogRecord")
	procGetNumberOfEvents = advapi32.NewProc("GetNumberOfEventLogRecords")
)

const (
	eventlogSequentialRead = 0x0001
	eventlogBackwardsRead  = 0x0008
	eventlogReadBufferSize = 64 * 1024
)

const (
	eventTypeError        = 0x0001
	eventTypeAuditFailure = 0x0010
	eventTypeAuditSuccess = 0x0008
	eventTypeInformation  = 0x0004
	eventTypeWarning      = 0x0002
)

// Legacy reads a named event log source sequentially backwards, the way
// the pre-Vista EventLog API works. Description resolution opens the
// source's registered EventMessageFile as a message-file loader and
// downgrades to the record's literal strings if that file can't be
// resolved.
type Legacy struct {
	h          windows.Handle
	sourceName string
}

// OpenLegacy opens sourceName (e.g. "Application", "System") on the local
// machine.
func OpenLegacy(sourceName string) (*Legacy, error) {
	srcPtr, err := windows.UTF16PtrFromString(sourceName)
	if err != nil {
		return nil, oserr.Wrap(oserr.InvalidUtf16, "eventlog.OpenLegacy", err)
	}
	h, _, errno := procOpenEventLogW.Call(0, uintptr(unsafe.Pointer(srcPtr)))
	if h == 0 {
		return nil, oserr.FromWindowsError("eventlog.OpenLegacy: "+sourceName, errno)
	}
	return &Legacy{h: windows.Handle(h), sourceName: sourceName}, nil
}

// Close releases the event-log handle.
func (l *Legacy) Close() error {
	if l == nil || l.h == 0 {
		return nil
	}
	ok, _, errno := procCloseEventLog.Call(uintptr(l.h))
	l.h = 0
	if ok == 0 {
		return oserr.FromWindowsError("eventlog.Legacy.Close", errno)
	}
	return nil
}

// ReadEvents reads every record in the log, newest first.
func (l *Legacy) ReadEvents() ([]Record, error) {
	var out []Record
	buf := make([]byte, eventlogReadBufferSize)
	for {
		var bytesRead, bytesNeeded uint32
		ok, _, errno := procReadEventLogW.Call(
			uintptr(l.h),
			eventlogSequentialRead|eventlogBackwardsRead,
			0,
			uintptr(unsafe.Pointer(&buf[0])),
			uintptr(len(buf)),
			uintptr(unsafe.Pointer(&bytesRead)),
			uintptr(unsafe.Pointer(&bytesNeeded)),
		)
		if ok == 0 {
			if errno == windows.ERROR_HANDLE_EOF {
				break
			}
			if errno == windows.ERROR_INSUFFICIENT_BUFFER {
				buf = make([]byte, bytesNeeded)
				continue
			}
			return nil, oserr.FromWindowsError("eventlog.Legacy.ReadEvents", errno)
		}
		out = append(out, parseEventLogRecords(buf[:bytesRead])...)
	}
	for i := range out {
		out[i].Description = l.resolveDescription(out[i])
	}
	return out, nil
}

type rawRecordHeader struct {
	Length              uint32
	Reserved            uint32
	RecordNumber        uint32
	TimeGenerated       uint32
	TimeWritten         uint32
	EventID             uint32
	EventType           uint16
	NumStrings          uint16
	EventCategory       uint16
	ReservedFlags       uint16
	ClosingRecordNumber uint32
	StringOffset        uint32
	UserSidLength       uint32
	UserSidOffset       uint32
	DataLength          uint32
	DataOffset          uint32
}

func parseEventLogRecords(buf []byte) []Record {
	var out []Record
	offset := 0
	for offset+int(unsafe.Sizeof(rawRecordHeader{})) <= len(buf) {
		hdr := (*rawRecordHeader)(unsafe.Pointer(&buf[offset]))
		if hdr.Length == 0 || offset+int(hdr.Length) > len(buf) {
			break
		}
		rec := buf[offset : offset+int(hdr.Length)]
		source, _ := readNulTerminatedWide(rec, int(unsafe.Sizeof(*hdr)))
		strs := readEventStrings(rec, int(hdr.StringOffset), int(hdr.NumStrings))

		out = append(out, Record{
			Timestamp: hdr.TimeGenerated,
			Level:     legacyLevel(hdr.EventType),
			EventID:   hdr.EventID & 0x0000FFFF,
			Source:    source,
			// Description is filled in by resolveDescription; stash the
			// literal strings as a fallback rendering for now.
			Description: joinStrings(strs),
		})
		offset += int(hdr.Length)
	}
	return out
}

func legacyLevel(eventType uint16) Level {
	switch eventType {
	case eventTypeError, eventTypeAuditFailure:
		return Error
	case eventTypeWarning:
		return Warning
	case eventTypeInformation, eventTypeAuditSuccess, 0:
		return Information
	default:
		return Other
	}
}

func readNulTerminatedWide(buf []byte, start int) (string, int) {
	i := start
	for i+1 < len(buf) {
		if buf[i] == 0 && buf[i+1] == 0 {
			break
		}
		i += 2
	}
	u16 := make([]uint16, (i-start)/2)
	for j := range u16 {
		u16[j] = binary.LittleEndian.Uint16(buf[start+2*j:])
	}
	return windows.UTF16ToString(u16), i + 2
}

func readEventStrings(buf []byte, offset, numStrings int) []string {
	if offset <= 0 || offset >= len(buf) {
		return nil
	}
	out := make([]string, 0, numStrings)
	pos := offset
	for i := 0; i < numStrings && pos < len(buf); i++ {
		s, next := readNulTerminatedWide(buf, pos)
		out = append(out, s)
		pos = next
	}
	return out
}

func joinStrings(strs []string) string {
	out := ""
	for i, s := range strs {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}

const eventLogServicesKeyPath = `\Registry\Machine\System\CurrentControlSet\Services\EventLog\`

// eventMessageFilePath reads the registered EventMessageFile for source
// under logName's EventLog registry subtree.
func eventMessageFilePath(logName, source string) (string, error) {
	key, err := registry.Open(eventLogServicesKeyPath+logName+`\`+source, keyQueryValue)
	if err != nil {
		return "", err
	}
	defer key.Close()
	v, err := key.GetValue("EventMessageFile")
	if err != nil {
		return "", err
	}
	return v.GetStringStrict()
}

const keyQueryValue = 0x0001 // KEY_QUERY_VALUE

// resolveDescription tries to format rec's description from the source's
// registered EventMessageFile, falling back to the literal data string
// already stashed in rec.Description.
func (l *Legacy) resolveDescription(rec Record) string {
	msgFile, err := eventMessageFilePath(l.sourceName, rec.Source)
	if err != nil {
		return rec.Description
	}
	loader, err := library.OpenFormattedMessageLoader(msgFile)
	if err != nil {
		return rec.Description
	}
	defer loader.Close()

	formatted, err := loader.Format(rec.EventID, nil)
	if err != nil {
		return rec.Description
	}
	return formatted
}
