package theme

import "testing"

func TestLoadEmbedded(t *testing.T) {
	for _, name := range []string{"escuro", "claro"} {
		t.Run(name, func(t *testing.T) {
			th, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q): %v", name, err)
			}
			if th.Name == "" || th.Bg == "" || th.Fg == "" {
				t.Errorf("incomplete theme: %+v", th)
			}
			if th.Online == "" || th.Presencial == "" || th.Block == "" {
				t.Errorf("missing card colors: %+v", th)
			}
		})
	}
}

func TestLoadCaseInsensitive(t *testing.T) {
	th, err := Load("Escuro")
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "escuro" {
		t.Errorf("Name = %q", th.Name)
	}
}

func TestLoadUnknown(t *testing.T) {
	if _, err := Load("solarized"); err == nil {
		t.Error("unknown theme did not fail")
	}
}
