package siri_vm

import (
	"time"
)

const Namespace = "http://www.siri.org.uk/siri"

type Siri struct {
	Version         string
	ServiceDelivery ServiceDelivery
}

type ServiceDelivery struct {
	ProducerRef       string
	ResponseTimestamp time.Time

	VehicleMonitoringDelivery VehicleMonitoringDelivery
}

type VehicleMonitoringDelivery struct {
	RequestMessageRef     string
	ResponseTimestamp     time.Time
	ShortestPossibleCycle string
	ValidUntil            time.Time

	// Kept in document order
	VehicleActivities []VehicleActivity
}

type VehicleActivity struct {
	RecordedAtTime time.Time
	ValidUntilTime time.Time
	ItemIdentifier *string

	MonitoredVehicleJourney MonitoredVehicleJourney
}

type MonitoredVehicleJourney struct {
	OperatorRef string
	VehicleRef  string

	LineRef           *string
	PublishedLineName *string
	VehicleJourneyRef *string

	DirectionRef           *string
	DirectionRefLineNumber *int

	BlockRef           *string
	BlockRefLineNumber *int

	OriginRef           *string
	OriginRefLineNumber *int
	OriginName          *string

	DestinationRef           *string
	DestinationRefLineNumber *int
	DestinationName          *string

	OriginAimedDepartureTime *time.Time
	Bearing                  *float64

	VehicleLocation         VehicleLocation
	FramedVehicleJourneyRef *FramedVehicleJourneyRef
	Extensions              *Extensions
}

type VehicleLocation struct {
	Longitude float64
	Latitude  float64
}

type FramedVehicleJourneyRef struct {
	DataFrameRef           time.Time
	DatedVehicleJourneyRef string
}

type Extensions struct {
	VehicleJourney *VehicleJourney
}

type VehicleJourney struct {
	DriverRef *string
}

// Header holds the delivery level values that are shared by every activity in a document
type Header struct {
	Version                            string
	ServiceDeliveryResponseTimestamp   time.Time
	ProducerRef                        string
	VehicleMonitoringResponseTimestamp time.Time
	RequestMessageRef                  string
	ValidUntil                         time.Time
	ShortestPossibleCycle              string
}

func (s *Siri) Header() Header {
	vmd := s.ServiceDelivery.VehicleMonitoringDelivery

	return Header{
		Version:                            s.Version,
		ServiceDeliveryResponseTimestamp:   s.ServiceDelivery.ResponseTimestamp,
		ProducerRef:                        s.ServiceDelivery.ProducerRef,
		VehicleMonitoringResponseTimestamp: vmd.ResponseTimestamp,
		RequestMessageRef:                  vmd.RequestMessageRef,
		ValidUntil:                         vmd.ValidUntil,
		ShortestPossibleCycle:              vmd.ShortestPossibleCycle,
	}
}

func (s *Siri) VehicleActivities() []VehicleActivity {
	return s.ServiceDelivery.VehicleMonitoringDelivery.VehicleActivities
}

// DatedVehicleJourneyRef returns the framed journey reference or nil when no frame was sent
func (m *MonitoredVehicleJourney) DatedVehicleJourneyRef() *string {
	if m.FramedVehicleJourneyRef == nil {
		return nil
	}

	ref := m.FramedVehicleJourneyRef.DatedVehicleJourneyRef
	return &ref
}

func (m *MonitoredVehicleJourney) DriverRef() *string {
	if m.Extensions == nil || m.Extensions.VehicleJourney == nil {
		return nil
	}

	return m.Extensions.VehicleJourney.DriverRef
}
