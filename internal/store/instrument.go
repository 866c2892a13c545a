package store

import "reach_edu_backend/pkg/monitoring"

type instrumented struct {
	inner Store
}

// Instrumented 包装任意后端，按操作类型计数。
func Instrumented(inner Store) Store {
	return &instrumented{inner: inner}
}

func (s *instrumented) Read(key string) (string, bool) {
	monitoring.RecordStoreOps.WithLabelValues("read").Inc()
	v, ok := s.inner.Read(key)
	if !ok {
		monitoring.RecordStoreMisses.Inc()
	}
	return v, ok
}

func (s *instrumented) Write(key, value string) error {
	monitoring.RecordStoreOps.WithLabelValues("write").Inc()
	return s.inner.Write(key, value)
}

func (s *instrumented) Remove(key string) {
	monitoring.RecordStoreOps.WithLabelValues("remove").Inc()
	s.inner.Remove(key)
}
