package service

import (
	"errors"
	"reflect"
	"testing"
)

type fakeService struct {
	name    string
	deps    []string
	failOn  string
	journal *[]string
	stopped int
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }

func (f *fakeService) Init(args ...any) error {
	*f.journal = append(*f.journal, "init:"+f.name)
	if f.failOn == "init" {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeService) Start() error {
	*f.journal = append(*f.journal, "start:"+f.name)
	if f.failOn == "start" {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeService) Stop() error {
	f.stopped++
	*f.journal = append(*f.journal, "stop:"+f.name)
	return nil
}

func (f *fakeService) Contribute(publish ResourcePublisher) {
	publish(f.name)
}

func newHub(t *testing.T, journal *[]string, svcs ...*fakeService) *Hub {
	t.Helper()
	h := NewHub()
	for _, s := range svcs {
		s.journal = journal
		if err := h.Register(s); err != nil {
			t.Fatalf("Register(%s): %v", s.name, err)
		}
	}
	return h
}

// TestHub_DependencyOrder verifies dependencies initialize first and stop last
func TestHub_DependencyOrder(t *testing.T) {
	var journal []string
	h := newHub(t, &journal,
		&fakeService{name: "audio", deps: []string{"terminal"}},
		&fakeService{name: "terminal"},
		&fakeService{name: "config"},
	)

	if err := h.InitAll(); err != nil {
		t.Fatalf("InitAll: %v", err)
	}
	if err := h.StartAll(); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	h.StopAll()

	expected := []string{
		"init:config", "init:terminal", "init:audio",
		"start:config", "start:terminal", "start:audio",
		"stop:audio", "stop:terminal", "stop:config",
	}
	if !reflect.DeepEqual(journal, expected) {
		t.Errorf("Expected %v, got %v", expected, journal)
	}
}

// TestHub_InitRollback verifies a failing Init stops the services initialized before it
func TestHub_InitRollback(t *testing.T) {
	var journal []string
	h := newHub(t, &journal,
		&fakeService{name: "a"},
		&fakeService{name: "b", deps: []string{"a"}, failOn: "init"},
	)

	if err := h.InitAll(); err == nil {
		t.Fatal("Expected init error")
	}

	expected := []string{"init:a", "init:b", "stop:a"}
	if !reflect.DeepEqual(journal, expected) {
		t.Errorf("Expected %v, got %v", expected, journal)
	}
}

// TestHub_StartRollback verifies a failing Start stops the already started services
func TestHub_StartRollback(t *testing.T) {
	var journal []string
	h := newHub(t, &journal,
		&fakeService{name: "a"},
		&fakeService{name: "b", deps: []string{"a"}, failOn: "start"},
	)

	if err := h.InitAll(); err != nil {
		t.Fatalf("InitAll: %v", err)
	}
	if err := h.StartAll(); err == nil {
		t.Fatal("Expected start error")
	}

	expected := []string{"init:a", "init:b", "start:a", "start:b", "stop:a"}
	if !reflect.DeepEqual(journal, expected) {
		t.Errorf("Expected %v, got %v", expected, journal)
	}

	// Nothing left to stop
	h.StopAll()
	if len(journal) != len(expected) {
		t.Errorf("Expected no further stops, got %v", journal[len(expected):])
	}
}

// TestHub_Errors verifies registration and graph errors
func TestHub_Errors(t *testing.T) {
	var journal []string

	h := newHub(t, &journal, &fakeService{name: "a"})
	if err := h.Register(&fakeService{name: "a", journal: &journal}); !errors.Is(err, ErrDuplicateService) {
		t.Errorf("Expected ErrDuplicateService, got %v", err)
	}

	h = newHub(t, &journal, &fakeService{name: "a", deps: []string{"ghost"}})
	if err := h.InitAll(); !errors.Is(err, ErrMissingDependency) {
		t.Errorf("Expected ErrMissingDependency, got %v", err)
	}

	h = newHub(t, &journal,
		&fakeService{name: "a", deps: []string{"b"}},
		&fakeService{name: "b", deps: []string{"a"}},
	)
	if err := h.InitAll(); !errors.Is(err, ErrDependencyCycle) {
		t.Errorf("Expected ErrDependencyCycle, got %v", err)
	}
}

// TestHub_PublishAll verifies contributors publish in initialization order
func TestHub_PublishAll(t *testing.T) {
	var journal []string
	h := newHub(t, &journal,
		&fakeService{name: "b", deps: []string{"c"}},
		&fakeService{name: "c"},
	)
	if err := h.InitAll(); err != nil {
		t.Fatalf("InitAll: %v", err)
	}

	var published []any
	h.PublishAll(func(r any) { published = append(published, r) })

	expected := []any{"c", "b"}
	if !reflect.DeepEqual(published, expected) {
		t.Errorf("Expected %v, got %v", expected, published)
	}

	if got := MustGet[*fakeService](h, "c"); got.name != "c" {
		t.Errorf("Expected c, got %s", got.name)
	}
}
