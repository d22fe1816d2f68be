package client

// Range is a bounded integer property as reported by the controller.
type Range struct {
	Value int `json:"value"`
	Max   int `json:"max"`
	Min   int `json:"min"`
}

// Info is the full document returned by a GET on the API root.
type Info struct {
	Name            string `json:"name"`
	SerialNo        string `json:"serialNo"`
	Manufacturer    string `json:"manufacturer"`
	FirmwareVersion string `json:"firmwareVersion"`
	Model           string `json:"model"`
	State           struct {
		On struct {
			Value bool `json:"value"`
		} `json:"on"`
		Brightness Range  `json:"brightness"`
		Hue        Range  `json:"hue"`
		Sat        Range  `json:"sat"`
		Ct         Range  `json:"ct"`
		ColorMode  string `json:"colorMode"`
	} `json:"state"`
	Effects struct {
		Select      string   `json:"select"`
		EffectsList []string `json:"effectsList"`
	} `json:"effects"`
	PanelLayout struct {
		Layout struct {
			NumPanels    int             `json:"numPanels"`
			SideLength   int             `json:"sideLength"`
			PositionData []PanelPosition `json:"positionData"`
		} `json:"layout"`
		GlobalOrientation Range `json:"globalOrientation"`
	} `json:"panelLayout"`
	Rhythm *RhythmInfo `json:"rhythm,omitempty"`
}

// Shape types reported in the layout's position data.
const (
	ShapeTriangle = 0
	ShapeRhythm   = 1
)

// PanelPosition is one entry of the layout's position data.
type PanelPosition struct {
	PanelID   int `json:"panelId"`
	X         int `json:"x"`
	Y         int `json:"y"`
	O         int `json:"o"`
	ShapeType int `json:"shapeType"`
}

// RhythmInfo describes the rhythm module, when one is attached.
type RhythmInfo struct {
	RhythmConnected bool            `json:"rhythmConnected"`
	RhythmActive    bool            `json:"rhythmActive"`
	RhythmID        int             `json:"rhythmId"`
	HardwareVersion string          `json:"hardwareVersion"`
	FirmwareVersion string          `json:"firmwareVersion"`
	AuxAvailable    bool            `json:"auxAvailable"`
	RhythmMode      RhythmMode      `json:"rhythmMode"`
	RhythmPos       *RhythmPosition `json:"rhythmPos,omitempty"`
}

// RhythmPosition is the rhythm module's place in the layout.
type RhythmPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	O float64 `json:"o"`
}

// StreamEndpoint is returned when external control is requested.
type StreamEndpoint struct {
	IP       string `json:"streamControlIpAddr"`
	Port     int    `json:"streamControlPort"`
	Protocol string `json:"streamControlProtocol"`
}
