package worker

import "sync"

// Task 池中執行的一項背景工作，例如移除被換掉的上傳檔
type Task func()

// Pool 背景工作池介面
// Stop 後不可再 Submit
type Pool interface {
	Submit(Task)
	Stop()
}

// NewPool 啟動 n 個 worker，n<=0 時視為 1
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{tasks: make(chan Task, n)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.loop()
	}
	return p
}

type pool struct {
	tasks chan Task
	wg    sync.WaitGroup
}

func (p *pool) loop() {
	defer p.wg.Done()
	for task := range p.tasks {
		if task != nil {
			task()
		}
	}
}

// Submit 把工作排入佇列，佇列滿時阻塞
func (p *pool) Submit(t Task) {
	p.tasks <- t
}

// Stop 關閉佇列並等待已排入的工作做完
func (p *pool) Stop() {
	close(p.tasks)
	p.wg.Wait()
}
