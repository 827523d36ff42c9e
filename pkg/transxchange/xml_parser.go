package transxchange

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
)

// ParseXMLFile streams a TransXChange document, decoding only the elements the
// post publishing checks use
func ParseXMLFile(reader io.Reader) (*TransXChange, error) {
	transXChange := TransXChange{}
	foundRoot := false

	d := xml.NewDecoder(reader)
	d.CharsetReader = charset.NewReaderLabel
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("decoding token: %w", err)
		}

		ty, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch ty.Name.Local {
		case "TransXChange":
			foundRoot = true

			for _, attr := range ty.Attr {
				switch attr.Name.Local {
				case "CreationDateTime":
					transXChange.CreationDateTime = attr.Value
				case "ModificationDateTime":
					transXChange.ModificationDateTime = attr.Value
				case "RevisionNumber":
					transXChange.RevisionNumber = attr.Value
				case "FileName":
					transXChange.FileName = attr.Value
				case "SchemaVersion":
					transXChange.SchemaVersion = attr.Value
				}
			}
		case "Operator", "LicensedOperator":
			var operator Operator
			if err := d.DecodeElement(&operator, &ty); err != nil {
				return nil, fmt.Errorf("decoding %s: %w", ty.Name.Local, err)
			}
			transXChange.Operators = append(transXChange.Operators, &operator)
		case "Service":
			var service Service
			if err := d.DecodeElement(&service, &ty); err != nil {
				return nil, fmt.Errorf("decoding Service: %w", err)
			}
			transXChange.Services = append(transXChange.Services, &service)
		case "JourneyPatternSection":
			var section JourneyPatternSection
			if err := d.DecodeElement(&section, &ty); err != nil {
				return nil, fmt.Errorf("decoding JourneyPatternSection: %w", err)
			}
			transXChange.JourneyPatternSections = append(transXChange.JourneyPatternSections, &section)
		case "VehicleJourney":
			var vehicleJourney VehicleJourney
			if err := d.DecodeElement(&vehicleJourney, &ty); err != nil {
				return nil, fmt.Errorf("decoding VehicleJourney: %w", err)
			}
			transXChange.VehicleJourneys = append(transXChange.VehicleJourneys, &vehicleJourney)
		case "ServicedOrganisation":
			var organisation ServicedOrganisation
			if err := d.DecodeElement(&organisation, &ty); err != nil {
				return nil, fmt.Errorf("decoding ServicedOrganisation: %w", err)
			}
			transXChange.ServicedOrganisations = append(transXChange.ServicedOrganisations, &organisation)
		}
	}

	if !foundRoot {
		return nil, ErrMissingRoot
	}

	log.Debug().
		Str("file", transXChange.FileName).
		Str("revision", transXChange.RevisionNumber).
		Int("operators", len(transXChange.Operators)).
		Int("services", len(transXChange.Services)).
		Int("vehiclejourneys", len(transXChange.VehicleJourneys)).
		Msg("Parsed TransXChange document")

	return &transXChange, nil
}

func ParseBytes(document []byte) (*TransXChange, error) {
	return ParseXMLFile(bytes.NewReader(document))
}
