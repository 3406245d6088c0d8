package services

import (
	"fmt"

	"github.com/sisoputnfrba/tp-2025-1c-cpu/cpu/models"
)

type frameRequest struct {
	pid     int
	page    int
	indexes []int
}

type pageWrite struct {
	page    int
	content string
}

type byteAccess struct {
	frame  int
	offset int
	value  string
}

// fakeMemory responde como Memoria usando mapas en memoria.
type fakeMemory struct {
	programs  map[int][]models.Instruction // pid -> instrucciones
	frames    map[int]int                  // página -> marco
	pages     map[int]string               // marco -> contenido
	fetchErr  error
	writeErr  error // falla de WritePage
	frameReqs []frameRequest
	pageReads []int
	pageWrite []pageWrite
	reads     []byteAccess
	writes    []byteAccess

	onWritePage func(page int)
}

func newFakeMemory() *fakeMemory {
	return &fakeMemory{
		programs: map[int][]models.Instruction{},
		frames:   map[int]int{},
		pages:    map[int]string{},
	}
}

func (m *fakeMemory) FetchInstruction(pid, pc int) (models.Instruction, error) {
	if m.fetchErr != nil {
		return models.Instruction{}, m.fetchErr
	}
	program := m.programs[pid]
	if pc < 0 || pc >= len(program) {
		return models.Instruction{}, fmt.Errorf("PID %d sin instrucción en PC %d", pid, pc)
	}
	return program[pc], nil
}

func (m *fakeMemory) ResolveFrame(pid, page int, indexes []int) (int, error) {
	m.frameReqs = append(m.frameReqs, frameRequest{pid: pid, page: page, indexes: indexes})
	frame, ok := m.frames[page]
	if !ok {
		return -1, nil
	}
	return frame, nil
}

func (m *fakeMemory) Read(frame, offset, size int) (string, error) {
	content := m.pages[frame]
	end := min(offset+size, len(content))
	value := ""
	if offset < end {
		value = content[offset:end]
	}
	m.reads = append(m.reads, byteAccess{frame: frame, offset: offset, value: value})
	return value, nil
}

func (m *fakeMemory) Write(frame, offset int, data string) error {
	m.writes = append(m.writes, byteAccess{frame: frame, offset: offset, value: data})
	return nil
}

func (m *fakeMemory) ReadPage(page, frame int) ([]byte, error) {
	m.pageReads = append(m.pageReads, page)
	return []byte(m.pages[frame]), nil
}

func (m *fakeMemory) WritePage(page int, content []byte) error {
	if m.onWritePage != nil {
		m.onWritePage(page)
	}
	if m.writeErr != nil {
		return m.writeErr
	}
	m.pageWrite = append(m.pageWrite, pageWrite{page: page, content: string(content)})
	return nil
}

type ioRequest struct {
	pid      int
	device   string
	duration string
	resumePC int
}

type interruptReport struct {
	pc  int
	pid int
}

// fakeKernel registra los avisos que le manda la CPU.
type fakeKernel struct {
	initProcs  [][]string
	dumps      []int
	ios        []ioRequest
	exits      []int
	interrupts []interruptReport
	reportErr  error
}

func (k *fakeKernel) InitProcess(pid int, file, size string) error {
	k.initProcs = append(k.initProcs, []string{fmt.Sprint(pid), file, size})
	return nil
}

func (k *fakeKernel) DumpMemory(pid int) error {
	k.dumps = append(k.dumps, pid)
	return nil
}

func (k *fakeKernel) RequestIO(pid int, device, duration string, resumePC int) error {
	k.ios = append(k.ios, ioRequest{pid: pid, device: device, duration: duration, resumePC: resumePC})
	return nil
}

func (k *fakeKernel) Exit(pid int) error {
	k.exits = append(k.exits, pid)
	return nil
}

func (k *fakeKernel) ReportInterrupt(pc, pid int) error {
	if k.reportErr != nil {
		return k.reportErr
	}
	k.interrupts = append(k.interrupts, interruptReport{pc: pc, pid: pid})
	return nil
}

func mustInstruction(op models.Operation, params ...string) models.Instruction {
	instruction, err := models.NewInstruction(op, params...)
	if err != nil {
		panic(err)
	}
	return instruction
}
