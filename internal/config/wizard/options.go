package wizard

import "github.com/charmbracelet/huh"

// LocationOption represents a Hetzner Cloud datacenter location.
type LocationOption struct {
	Value       string
	Label       string
	Description string
}

// ServerTypeOption represents a Hetzner Cloud server type.
type ServerTypeOption struct {
	Value       string
	Label       string
	Description string
}

// Locations contains all valid Hetzner Cloud datacenter locations.
var Locations = []LocationOption{
	{Value: "nbg1", Label: "nbg1", Description: "Nuremberg, Germany"},
	{Value: "fsn1", Label: "fsn1", Description: "Falkenstein, Germany"},
	{Value: "hel1", Label: "hel1", Description: "Helsinki, Finland"},
	{Value: "ash", Label: "ash", Description: "Ashburn, USA"},
	{Value: "hil", Label: "hil", Description: "Hillsboro, USA"},
	{Value: "sin", Label: "sin", Description: "Singapore"},
}

// ServerTypes contains recommended server types for the app instance.
var ServerTypes = []ServerTypeOption{
	{Value: "cx22", Label: "cx22", Description: "2 vCPU, 4GB RAM (Intel)"},
	{Value: "cx32", Label: "cx32", Description: "4 vCPU, 8GB RAM (Intel)"},
	{Value: "cpx21", Label: "cpx21", Description: "3 vCPU, 4GB RAM (AMD)"},
	{Value: "cpx31", Label: "cpx31", Description: "4 vCPU, 8GB RAM (AMD)"},
	{Value: "cax11", Label: "cax11", Description: "2 vCPU, 4GB RAM (ARM)"},
	{Value: "cax21", Label: "cax21", Description: "4 vCPU, 8GB RAM (ARM)"},
}

// Images contains the OS images the boot script supports.
var Images = []string{
	"ubuntu-24.04",
	"ubuntu-22.04",
	"debian-12",
}

// DatabaseOptions lists the optional databases installed on first boot.
var DatabaseOptions = []huh.Option[string]{
	huh.NewOption("None", ""),
	huh.NewOption("PostgreSQL", "postgres"),
}

// LocationsToOptions converts locations to huh select options.
func LocationsToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(Locations))
	for _, loc := range Locations {
		opts = append(opts, huh.NewOption(loc.Label+" - "+loc.Description, loc.Value))
	}
	return opts
}

// ServerTypesToOptions converts server types to huh select options.
func ServerTypesToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(ServerTypes))
	for _, st := range ServerTypes {
		opts = append(opts, huh.NewOption(st.Label+" - "+st.Description, st.Value))
	}
	return opts
}

// ImagesToOptions converts image names to huh select options.
func ImagesToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(Images))
	for _, img := range Images {
		opts = append(opts, huh.NewOption(img, img))
	}
	return opts
}
