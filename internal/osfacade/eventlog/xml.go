//go:build windows

package eventlog

import (
	"encoding/xml"
	"strconv"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/billyoneal/instalog-go/internal/oserr"
)

// parseEvtTimeCreated parses the XML TimeCreated/@SystemTime attribute
// (RFC3339 with fractional seconds, e.g. "2024-01-02T03:04:05.1234567Z")
// into Unix-epoch seconds.
func parseEvtTimeCreated(s string) (uint32, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, err
	}
	return uint32(t.Unix()), nil
}

var (
	wevtapi                     = windows.NewLazySystemDLL("wevtapi.dll")
	procEvtQuery                = wevtapi.NewProc("EvtQuery")
	procEvtNext                 = wevtapi.NewProc("EvtNext")
	procEvtRender               = wevtapi.NewProc("EvtRender")
	procEvtClose                = wevtapi.NewProc("EvtClose")
	procEvtOpenPublisherMeta    = wevtapi.NewProc("EvtOpenPublisherMetadata")
	procEvtFormatMessage        = wevtapi.NewProc("EvtFormatMessage")
)

const (
	evtQueryChannelPath  = 0x1
	evtRenderEventXML    = 1
	evtFormatMessageEvent = 1
	evtBatchSize         = 100
)

// XMLLog reads a channel via a structured XPath query, rendering each
// result to XML and extracting the fields the report needs.
type XMLLog struct {
	resultSet uintptr
}

// OpenXML issues an EvtQuery against channel using the given XPath query.
func OpenXML(channel, query string) (*XMLLog, error) {
	chPtr, err := windows.UTF16PtrFromString(channel)
	if err != nil {
		return nil, oserr.Wrap(oserr.InvalidUtf16, "eventlog.OpenXML", err)
	}
	qPtr, err := windows.UTF16PtrFromString(query)
	if err != nil {
		return nil, oserr.Wrap(oserr.InvalidUtf16, "eventlog.OpenXML", err)
	}
	h, _, errno := procEvtQuery.Call(0, uintptr(unsafe.Pointer(chPtr)), uintptr(unsafe.Pointer(qPtr)), evtQueryChannelPath)
	if h == 0 {
		return nil, oserr.FromWindowsError("eventlog.OpenXML: EvtQuery "+channel, errno)
	}
	return &XMLLog{resultSet: h}, nil
}

// Close releases the query result set.
func (x *XMLLog) Close() error {
	if x == nil || x.resultSet == 0 {
		return nil
	}
	procEvtClose.Call(x.resultSet)
	x.resultSet = 0
	return nil
}

// ReadEvents fetches result handles in batches of evtBatchSize and decodes
// each to a Record.
func (x *XMLLog) ReadEvents() ([]Record, error) {
	var out []Record
	handles := make([]uintptr, evtBatchSize)
	for {
		var returned uint32
		ok, _, errno := procEvtNext.Call(
			x.resultSet,
			uintptr(len(handles)),
			uintptr(unsafe.Pointer(&handles[0])),
			uintptr(0xFFFFFFFF), // INFINITE timeout
			0,
			uintptr(unsafe.Pointer(&returned)),
		)
		if ok == 0 {
			if errno == windows.ERROR_NO_MORE_ITEMS {
				break
			}
			return nil, oserr.FromWindowsError("eventlog.XMLLog.ReadEvents: EvtNext", errno)
		}
		for i := uint32(0); i < returned; i++ {
			rec, err := renderEvent(handles[i])
			procEvtClose.Call(handles[i])
			if err != nil {
				continue
			}
			out = append(out, rec)
		}
		if returned < uint32(len(handles)) {
			break
		}
	}
	return out, nil
}

func renderEvent(eventHandle uintptr) (Record, error) {
	var bufferUsed, propertyCount uint32
	procEvtRender.Call(0, eventHandle, evtRenderEventXML, 0, 0, uintptr(unsafe.Pointer(&bufferUsed)), uintptr(unsafe.Pointer(&propertyCount)))
	if bufferUsed == 0 {
		return Record{}, oserr.New(oserr.Other, "eventlog.renderEvent: EvtRender returned no size")
	}
	buf := make([]uint16, bufferUsed/2+1)
	ok, _, errno := procEvtRender.Call(
		0, eventHandle, evtRenderEventXML,
		uintptr(len(buf)*2), uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&bufferUsed)), uintptr(unsafe.Pointer(&propertyCount)),
	)
	if ok == 0 {
		return Record{}, oserr.FromWindowsError("eventlog.renderEvent: EvtRender", errno)
	}
	xmlText := windows.UTF16ToString(buf)

	var ev evtXMLEvent
	if err := xml.Unmarshal([]byte(xmlText), &ev); err != nil {
		return Record{}, oserr.Wrap(oserr.Other, "eventlog.renderEvent: xml.Unmarshal", err)
	}

	timestamp, _ := parseEvtTimeCreated(ev.System.TimeCreated.SystemTime)
	eventID, _ := strconv.ParseUint(ev.System.EventID, 10, 32)
	levelByte, _ := strconv.ParseUint(ev.System.Level, 10, 8)

	rec := Record{
		Timestamp:   timestamp,
		Level:       xmlLevel(byte(levelByte)),
		EventID:     uint32(eventID),
		Source:      stripProviderPrefix(ev.System.Provider.Name),
		Description: formatEventDescription(eventHandle, ev.System.Provider.Name),
	}
	return rec, nil
}

type evtXMLEvent struct {
	System struct {
		Provider struct {
			Name string `xml:"Name,attr"`
		} `xml:"Provider"`
		EventID     string `xml:"EventID"`
		Level       string `xml:"Level"`
		TimeCreated struct {
			SystemTime string `xml:"SystemTime,attr"`
		} `xml:"TimeCreated"`
	} `xml:"System"`
}

// xmlLevel maps the XML Level byte (0 Log Always / 1 Critical / 2 Error /
// 3 Warning / 4 Information) to the shared enum.
func xmlLevel(level byte) Level {
	switch level {
	case 1:
		return Critical
	case 2:
		return Error
	case 3:
		return Warning
	case 4, 0:
		return Information
	default:
		return Other
	}
}

func formatEventDescription(eventHandle uintptr, providerName string) string {
	pubPtr, err := windows.UTF16PtrFromString(providerName)
	if err != nil {
		return ""
	}
	pubMeta, _, _ := procEvtOpenPublisherMeta.Call(0, uintptr(unsafe.Pointer(pubPtr)), 0, 0, 0)
	if pubMeta == 0 {
		return ""
	}
	defer procEvtClose.Call(pubMeta)

	var bufferUsed uint32
	procEvtFormatMessage.Call(pubMeta, eventHandle, 0, 0, 0, evtFormatMessageEvent, 0, 0, uintptr(unsafe.Pointer(&bufferUsed)))
	if bufferUsed == 0 {
		return ""
	}
	buf := make([]uint16, bufferUsed)
	ok, _, _ := procEvtFormatMessage.Call(
		pubMeta, eventHandle, 0, 0, 0, evtFormatMessageEvent,
		uintptr(len(buf)*2), uintptr(unsafe.Pointer(&buf[0])), uintptr(unsafe.Pointer(&bufferUsed)),
	)
	if ok == 0 {
		return ""
	}
	return windows.UTF16ToString(buf)
}
