package errcode

// 错误码约定（随 WebSocket 通知下发）：
// - 0：无错误
// - 4xxx：用户可处理的问题（方案不合法、修订次数用尽、资源缺失）
// - 5xxx：系统错误（生成、部署、下线失败）
const (
	OK               = 0
	InvalidPlan      = 4001
	RevisionLimit    = 4003
	ResourceMissing  = 4004
	SystemError      = 5000
	GenerationFailed = 5001
	DeployFailed     = 5002
	TakedownFailed   = 5003
)
