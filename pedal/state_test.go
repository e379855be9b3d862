package pedal

import "testing"

func TestParamStateClone(t *testing.T) {
	orig := ParamState{"mix": 64, "bypass": 0}
	clone := orig.Clone()

	clone["mix"] = 10
	if orig["mix"] != 64 {
		t.Error("mutating a clone changed the original")
	}

	var nilState ParamState
	if nilState.Clone() == nil {
		t.Error("cloning a nil state returned nil")
	}
}

func TestParamStateEqual(t *testing.T) {
	a := ParamState{"mix": 64, "bypass": 0}
	b := ParamState{"mix": 64, "bypass": 0}
	if !a.Equal(b) {
		t.Error("identical states unequal")
	}

	b["mix"] = 65
	if a.Equal(b) {
		t.Error("differing values equal")
	}

	c := ParamState{"mix": 64}
	if a.Equal(c) {
		t.Error("differing key sets equal")
	}
}

func TestParamStateGet(t *testing.T) {
	s := ParamState{"mix": 64}
	if v, ok := s.Get("mix"); !ok || v != 64 {
		t.Errorf("Get(mix) = %d, %v", v, ok)
	}
	if _, ok := s.Get("nope"); ok {
		t.Error("Get resolved a missing field")
	}
}
