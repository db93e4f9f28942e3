package idgen

import "testing"

func TestSnowflake_单调递增且同毫秒序号递增(t *testing.T) {
	s, err := NewSnowflake(3)
	if err != nil {
		t.Fatalf("NewSnowflake err=%v", err)
	}
	s.now = func() int64 { return snowflakeEpochMilli + 1000 }

	a, b := s.NextID(), s.NextID()
	if b != a+1 {
		t.Fatalf("期望同毫秒内序号 +1, a=%d b=%d", a, b)
	}
	if (a>>nodeShift)&maxNodeID != 3 {
		t.Fatalf("期望节点位为 3, got=%d", (a>>nodeShift)&maxNodeID)
	}

	// 时钟回拨不回退
	s.now = func() int64 { return snowflakeEpochMilli + 10 }
	if c := s.NextID(); c <= b {
		t.Fatalf("期望回拨后仍单调, b=%d c=%d", b, c)
	}
}

func TestNewSnowflake_节点越界(t *testing.T) {
	if _, err := NewSnowflake(maxNodeID + 1); err == nil {
		t.Fatalf("期望节点越界报错")
	}
}

func TestSequence_从起点递增(t *testing.T) {
	s := NewSequence(10)
	if s.NextID() != 10 || s.NextID() != 11 {
		t.Fatalf("期望 10, 11")
	}
}
