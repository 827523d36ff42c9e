package siri_vm

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

// located captures an element's text along with the line it was found on
type located struct {
	Value string
	Line  int
}

func (l *located) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	l.Line, _ = d.InputPos()

	return d.DecodeElement(&l.Value, &start)
}

type xmlSiri struct {
	XMLName         xml.Name
	Version         *string             `xml:"version,attr"`
	ServiceDelivery *xmlServiceDelivery `xml:"http://www.siri.org.uk/siri ServiceDelivery"`
}

type xmlServiceDelivery struct {
	ResponseTimestamp         *string                       `xml:"http://www.siri.org.uk/siri ResponseTimestamp"`
	ProducerRef               *string                       `xml:"http://www.siri.org.uk/siri ProducerRef"`
	VehicleMonitoringDelivery *xmlVehicleMonitoringDelivery `xml:"http://www.siri.org.uk/siri VehicleMonitoringDelivery"`
}

type xmlVehicleMonitoringDelivery struct {
	ResponseTimestamp     *string              `xml:"http://www.siri.org.uk/siri ResponseTimestamp"`
	RequestMessageRef     *string              `xml:"http://www.siri.org.uk/siri RequestMessageRef"`
	ValidUntil            *string              `xml:"http://www.siri.org.uk/siri ValidUntil"`
	ShortestPossibleCycle *string              `xml:"http://www.siri.org.uk/siri ShortestPossibleCycle"`
	VehicleActivity       []xmlVehicleActivity `xml:"http://www.siri.org.uk/siri VehicleActivity"`
}

type xmlVehicleActivity struct {
	XMLName                 xml.Name
	RecordedAtTime          *string                     `xml:"http://www.siri.org.uk/siri RecordedAtTime"`
	ItemIdentifier          *string                     `xml:"http://www.siri.org.uk/siri ItemIdentifier"`
	ValidUntilTime          *string                     `xml:"http://www.siri.org.uk/siri ValidUntilTime"`
	MonitoredVehicleJourney *xmlMonitoredVehicleJourney `xml:"http://www.siri.org.uk/siri MonitoredVehicleJourney"`
}

type xmlMonitoredVehicleJourney struct {
	XMLName                  xml.Name
	LineRef                  *string                     `xml:"http://www.siri.org.uk/siri LineRef"`
	DirectionRef             *located                    `xml:"http://www.siri.org.uk/siri DirectionRef"`
	FramedVehicleJourneyRef  *xmlFramedVehicleJourneyRef `xml:"http://www.siri.org.uk/siri FramedVehicleJourneyRef"`
	VehicleJourneyRef        *string                     `xml:"http://www.siri.org.uk/siri VehicleJourneyRef"`
	PublishedLineName        *string                     `xml:"http://www.siri.org.uk/siri PublishedLineName"`
	OperatorRef              *string                     `xml:"http://www.siri.org.uk/siri OperatorRef"`
	OriginRef                *located                    `xml:"http://www.siri.org.uk/siri OriginRef"`
	OriginName               *string                     `xml:"http://www.siri.org.uk/siri OriginName"`
	DestinationRef           *located                    `xml:"http://www.siri.org.uk/siri DestinationRef"`
	DestinationName          *string                     `xml:"http://www.siri.org.uk/siri DestinationName"`
	OriginAimedDepartureTime *string                     `xml:"http://www.siri.org.uk/siri OriginAimedDepartureTime"`
	VehicleLocation          *xmlVehicleLocation         `xml:"http://www.siri.org.uk/siri VehicleLocation"`
	Bearing                  *string                     `xml:"http://www.siri.org.uk/siri Bearing"`
	BlockRef                 *located                    `xml:"http://www.siri.org.uk/siri BlockRef"`
	VehicleRef               *string                     `xml:"http://www.siri.org.uk/siri VehicleRef"`
	Extensions               *xmlExtensions              `xml:"http://www.siri.org.uk/siri Extensions"`
}

type xmlFramedVehicleJourneyRef struct {
	DataFrameRef           *string `xml:"http://www.siri.org.uk/siri DataFrameRef"`
	DatedVehicleJourneyRef *string `xml:"http://www.siri.org.uk/siri DatedVehicleJourneyRef"`
}

type xmlVehicleLocation struct {
	Longitude *string `xml:"http://www.siri.org.uk/siri Longitude"`
	Latitude  *string `xml:"http://www.siri.org.uk/siri Latitude"`
}

type xmlExtensions struct {
	VehicleJourney *xmlVehicleJourney `xml:"http://www.siri.org.uk/siri VehicleJourney"`
}

type xmlVehicleJourney struct {
	DriverRef *string `xml:"http://www.siri.org.uk/siri DriverRef"`
}

func newDecoder(reader io.Reader) *xml.Decoder {
	d := xml.NewDecoder(reader)
	d.CharsetReader = charset.NewReaderLabel

	return d
}

// ParseXML reads a complete SIRI-VM document into memory and builds the typed model from it
func ParseXML(reader io.Reader) (*Siri, error) {
	var document xmlSiri

	if err := newDecoder(reader).Decode(&document); err != nil {
		return nil, fmt.Errorf("decoding SIRI-VM document: %w", err)
	}

	return document.build()
}

func ParseBytes(packet []byte) (*Siri, error) {
	return ParseXML(bytes.NewReader(packet))
}

func ParseString(packet string) (*Siri, error) {
	return ParseXML(strings.NewReader(packet))
}

// ParseVehicleActivity builds a VehicleActivity from a standalone element
func ParseVehicleActivity(fragment []byte) (*VehicleActivity, error) {
	var element xmlVehicleActivity
	if err := newDecoder(bytes.NewReader(fragment)).Decode(&element); err != nil {
		return nil, fmt.Errorf("decoding VehicleActivity: %w", err)
	}
	if !isSiriElement(element.XMLName, "VehicleActivity") {
		return nil, &ParsingError{Element: "VehicleActivity"}
	}

	activity, err := element.build()
	if err != nil {
		return nil, err
	}

	return &activity, nil
}

// ParseMonitoredVehicleJourney builds a MonitoredVehicleJourney from a standalone element
func ParseMonitoredVehicleJourney(fragment []byte) (*MonitoredVehicleJourney, error) {
	var element xmlMonitoredVehicleJourney
	if err := newDecoder(bytes.NewReader(fragment)).Decode(&element); err != nil {
		return nil, fmt.Errorf("decoding MonitoredVehicleJourney: %w", err)
	}
	if !isSiriElement(element.XMLName, "MonitoredVehicleJourney") {
		return nil, &ParsingError{Element: "MonitoredVehicleJourney"}
	}

	mvj, err := element.build()
	if err != nil {
		return nil, err
	}

	return &mvj, nil
}

func isSiriElement(name xml.Name, local string) bool {
	return name.Space == Namespace && name.Local == local
}

func (x *xmlSiri) build() (*Siri, error) {
	if !isSiriElement(x.XMLName, "Siri") {
		return nil, &ParsingError{Element: "Siri"}
	}
	if x.Version == nil {
		return nil, &MissingAttributeError{Element: "Siri", Attribute: "version"}
	}
	if x.ServiceDelivery == nil {
		return nil, &ParsingError{Element: "ServiceDelivery"}
	}

	serviceDelivery, err := x.ServiceDelivery.build()
	if err != nil {
		return nil, err
	}

	return &Siri{
		Version:         *x.Version,
		ServiceDelivery: serviceDelivery,
	}, nil
}

func (x *xmlServiceDelivery) build() (ServiceDelivery, error) {
	var serviceDelivery ServiceDelivery
	var err error

	if x.VehicleMonitoringDelivery == nil {
		return serviceDelivery, &ParsingError{Element: "VehicleMonitoringDelivery"}
	}
	if serviceDelivery.ProducerRef, err = requiredText(x.ProducerRef, "ProducerRef"); err != nil {
		return serviceDelivery, err
	}
	if serviceDelivery.ResponseTimestamp, err = requiredDateTime(x.ResponseTimestamp, "ResponseTimestamp"); err != nil {
		return serviceDelivery, err
	}
	if serviceDelivery.VehicleMonitoringDelivery, err = x.VehicleMonitoringDelivery.build(); err != nil {
		return serviceDelivery, err
	}

	return serviceDelivery, nil
}

func (x *xmlVehicleMonitoringDelivery) build() (VehicleMonitoringDelivery, error) {
	var delivery VehicleMonitoringDelivery
	var err error

	if delivery.RequestMessageRef, err = requiredText(x.RequestMessageRef, "RequestMessageRef"); err != nil {
		return delivery, err
	}
	if delivery.ResponseTimestamp, err = requiredDateTime(x.ResponseTimestamp, "ResponseTimestamp"); err != nil {
		return delivery, err
	}
	if delivery.ShortestPossibleCycle, err = requiredText(x.ShortestPossibleCycle, "ShortestPossibleCycle"); err != nil {
		return delivery, err
	}
	if delivery.ValidUntil, err = requiredDateTime(x.ValidUntil, "ValidUntil"); err != nil {
		return delivery, err
	}

	delivery.VehicleActivities = make([]VehicleActivity, 0, len(x.VehicleActivity))
	for i := range x.VehicleActivity {
		activity, err := x.VehicleActivity[i].build()
		if err != nil {
			return delivery, err
		}

		delivery.VehicleActivities = append(delivery.VehicleActivities, activity)
	}

	return delivery, nil
}

func (x *xmlVehicleActivity) build() (VehicleActivity, error) {
	var activity VehicleActivity
	var err error

	if x.MonitoredVehicleJourney == nil {
		return activity, &ParsingError{Element: "MonitoredVehicleJourney"}
	}
	if activity.RecordedAtTime, err = requiredDateTime(x.RecordedAtTime, "RecordedAtTime"); err != nil {
		return activity, err
	}
	if activity.ValidUntilTime, err = requiredDateTime(x.ValidUntilTime, "ValidUntilTime"); err != nil {
		return activity, err
	}
	activity.ItemIdentifier = x.ItemIdentifier

	if activity.MonitoredVehicleJourney, err = x.MonitoredVehicleJourney.build(); err != nil {
		return activity, err
	}

	return activity, nil
}

func (x *xmlMonitoredVehicleJourney) build() (MonitoredVehicleJourney, error) {
	var mvj MonitoredVehicleJourney
	var err error

	if x.VehicleLocation == nil {
		return mvj, &ParsingError{Element: "VehicleLocation"}
	}
	if mvj.OperatorRef, err = requiredText(x.OperatorRef, "OperatorRef"); err != nil {
		return mvj, err
	}
	if mvj.VehicleRef, err = requiredText(x.VehicleRef, "VehicleRef"); err != nil {
		return mvj, err
	}

	mvj.LineRef = x.LineRef
	mvj.PublishedLineName = x.PublishedLineName
	mvj.VehicleJourneyRef = x.VehicleJourneyRef
	mvj.OriginName = x.OriginName
	mvj.DestinationName = x.DestinationName

	mvj.DirectionRef, mvj.DirectionRefLineNumber = optionalLocated(x.DirectionRef)
	mvj.BlockRef, mvj.BlockRefLineNumber = optionalLocated(x.BlockRef)
	mvj.OriginRef, mvj.OriginRefLineNumber = optionalLocated(x.OriginRef)
	mvj.DestinationRef, mvj.DestinationRefLineNumber = optionalLocated(x.DestinationRef)

	if mvj.OriginAimedDepartureTime, err = optionalDateTime(x.OriginAimedDepartureTime, "OriginAimedDepartureTime"); err != nil {
		return mvj, err
	}
	if mvj.Bearing, err = optionalFloat(x.Bearing, "Bearing"); err != nil {
		return mvj, err
	}

	if mvj.VehicleLocation.Longitude, err = requiredFloat(x.VehicleLocation.Longitude, "Longitude"); err != nil {
		return mvj, err
	}
	if mvj.VehicleLocation.Latitude, err = requiredFloat(x.VehicleLocation.Latitude, "Latitude"); err != nil {
		return mvj, err
	}

	if x.FramedVehicleJourneyRef != nil {
		var framed FramedVehicleJourneyRef

		if framed.DataFrameRef, err = requiredDate(x.FramedVehicleJourneyRef.DataFrameRef, "DataFrameRef"); err != nil {
			return mvj, err
		}
		if framed.DatedVehicleJourneyRef, err = requiredText(x.FramedVehicleJourneyRef.DatedVehicleJourneyRef, "DatedVehicleJourneyRef"); err != nil {
			return mvj, err
		}

		mvj.FramedVehicleJourneyRef = &framed
	}

	if x.Extensions != nil {
		mvj.Extensions = &Extensions{}

		if x.Extensions.VehicleJourney != nil {
			mvj.Extensions.VehicleJourney = &VehicleJourney{
				DriverRef: x.Extensions.VehicleJourney.DriverRef,
			}
		}
	}

	return mvj, nil
}

// Accepted timestamp layouts, feeds do not always send an offset
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

func parseDateTime(value string) (time.Time, error) {
	var err error

	for _, layout := range dateTimeLayouts {
		var parsed time.Time
		if parsed, err = time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, err
}

func requiredText(value *string, element string) (string, error) {
	if value == nil {
		return "", &ParsingError{Element: element}
	}

	return *value, nil
}

func requiredDateTime(value *string, element string) (time.Time, error) {
	if value == nil {
		return time.Time{}, &ParsingError{Element: element}
	}

	parsed, err := parseDateTime(*value)
	if err != nil {
		return time.Time{}, &ValidationError{Element: element, Value: *value, Err: err}
	}

	return parsed, nil
}

func optionalDateTime(value *string, element string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}

	parsed, err := requiredDateTime(value, element)
	if err != nil {
		return nil, err
	}

	return &parsed, nil
}

func requiredDate(value *string, element string) (time.Time, error) {
	if value == nil {
		return time.Time{}, &ParsingError{Element: element}
	}

	parsed, err := time.Parse(time.DateOnly, strings.TrimSpace(*value))
	if err != nil {
		return time.Time{}, &ValidationError{Element: element, Value: *value, Err: err}
	}

	return parsed, nil
}

func requiredFloat(value *string, element string) (float64, error) {
	if value == nil {
		return 0, &ParsingError{Element: element}
	}

	parsed, err := strconv.ParseFloat(strings.TrimSpace(*value), 64)
	if err != nil {
		return 0, &ValidationError{Element: element, Value: *value, Err: err}
	}

	return parsed, nil
}

func optionalFloat(value *string, element string) (*float64, error) {
	if value == nil {
		return nil, nil
	}

	parsed, err := requiredFloat(value, element)
	if err != nil {
		return nil, err
	}

	return &parsed, nil
}

func optionalLocated(value *located) (*string, *int) {
	if value == nil {
		return nil, nil
	}

	text := value.Value
	line := value.Line

	return &text, &line
}
