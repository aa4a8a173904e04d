package log

import "testing"

func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{DirectionIn, "IN"},
		{DirectionOut, "OUT"},
		{Direction(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.dir.String()
		if got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestLayerString(t *testing.T) {
	tests := []struct {
		layer Layer
		want  string
	}{
		{LayerTransport, "TRANSPORT"},
		{LayerDisplay, "DISPLAY"},
		{LayerDiscovery, "DISCOVERY"},
		{Layer(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.layer.String()
		if got != tt.want {
			t.Errorf("Layer(%d).String() = %q, want %q", tt.layer, got, tt.want)
		}
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryExchange, "EXCHANGE"},
		{CategoryState, "STATE"},
		{CategoryDiscovery, "DISCOVERY"},
		{CategoryError, "ERROR"},
		{Category(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.cat.String()
		if got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
	}
}

func TestOperationStringAndParse(t *testing.T) {
	for op := OpEnumerate; op <= OpTiming; op++ {
		parsed, err := ParseOperation(op.String())
		if err != nil {
			t.Fatalf("ParseOperation(%q) failed: %v", op.String(), err)
		}
		if parsed != op {
			t.Errorf("ParseOperation(%q) = %v, want %v", op.String(), parsed, op)
		}
	}

	if got, _ := ParseOperation("get_vcp"); got != OpGetVCP {
		t.Errorf("ParseOperation(get_vcp) = %v, want GET_VCP", got)
	}
	if _, err := ParseOperation("reboot"); err == nil {
		t.Error("ParseOperation(reboot) should fail")
	}
	if got := Operation(200).String(); got != "UNKNOWN" {
		t.Errorf("Operation(200).String() = %q, want UNKNOWN", got)
	}
}

func TestDiscoveryActionString(t *testing.T) {
	tests := []struct {
		action DiscoveryAction
		want   string
	}{
		{DiscoveryEnumerated, "ENUMERATED"},
		{DiscoveryAdded, "ADDED"},
		{DiscoveryDuplicate, "DUPLICATE"},
		{DiscoveryReplaced, "REPLACED"},
		{DiscoveryFailed, "FAILED"},
		{DiscoveryAction(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("DiscoveryAction(%d).String() = %q, want %q", tt.action, got, tt.want)
		}
	}
}

func TestStateEntityString(t *testing.T) {
	if got := StateEntityDisplay.String(); got != "DISPLAY" {
		t.Errorf("StateEntityDisplay.String() = %q, want DISPLAY", got)
	}
	if got := StateEntity(9).String(); got != "UNKNOWN" {
		t.Errorf("StateEntity(9).String() = %q, want UNKNOWN", got)
	}
}

func TestNewExchangeTruncates(t *testing.T) {
	data := make([]byte, MaxDataSize+10)
	ex := NewExchange(OpCapabilities, nil, 1, data)
	if len(ex.Data) != MaxDataSize {
		t.Errorf("len(Data) = %d, want %d", len(ex.Data), MaxDataSize)
	}
	if !ex.Truncated {
		t.Error("Truncated = false, want true")
	}

	small := []byte{1, 2}
	ex = NewExchange(OpGetVCP, nil, 2, small)
	small[0] = 9
	if ex.Data[0] != 1 {
		t.Error("NewExchange should copy data")
	}
	if ex.Truncated {
		t.Error("Truncated = true, want false")
	}

	if ex := NewExchange(OpSave, nil, 1, nil); ex.Data != nil {
		t.Errorf("Data = %v, want nil", ex.Data)
	}
}
