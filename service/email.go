package service

import (
	"fmt"
	"time"

	"lifelog/config"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务：发送每日摘要报告
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// DailySummary 摘要邮件的数据
type DailySummary struct {
	Date          time.Time
	ExpenseTotal  string
	ExpenseCount  int
	Nutrition     NutritionTotals
	Targets       NutritionTargets
	LatestWeight  float64
	HasWeight     bool
	HabitReported bool
}

// SendDailySummary 发送每日摘要邮件
func (s *EmailService) SendDailySummary(toEmail string, summary DailySummary) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用，请配置 email.enabled=true")
	}

	subject := fmt.Sprintf("【LifeLog】%s 每日摘要", summary.Date.Format("2006-01-02"))
	body := s.generateSummaryBody(summary)

	return s.sendEmail(toEmail, subject, body)
}

// generateSummaryBody 生成摘要邮件内容
func (s *EmailService) generateSummaryBody(summary DailySummary) string {
	weightLine := "今天还没有记录体重"
	if summary.HasWeight {
		weightLine = fmt.Sprintf("最近体重：<strong>%.1f kg</strong>", summary.LatestWeight)
	}
	habitLine := "今天还没有习惯打卡"
	if summary.HabitReported {
		habitLine = "今日习惯已打卡 ✅"
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #16a34a, #15803d); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 16px; }
        .block { background: #f8f9fa; border-radius: 8px; padding: 16px 20px; margin: 0 0 16px; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🥗 LifeLog 每日摘要</h1>
        </div>
        <div class="content">
            <p><strong>%s</strong></p>
            <div class="block">
                <p>💰 今日支出：<strong>%s</strong>（%d 笔）</p>
            </div>
            <div class="block">
                <p>🍽️ 今日营养：%d / %d kcal，蛋白 %.0f / %.0f g，碳水 %.0f / %.0f g，脂肪 %.0f / %.0f g</p>
            </div>
            <div class="block">
                <p>⚖️ %s</p>
                <p>📖 %s</p>
            </div>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>© LifeLog - 你的生活质量追踪助手</p>
        </div>
    </div>
</body>
</html>
`,
		summary.Date.Format("2006-01-02"),
		summary.ExpenseTotal, summary.ExpenseCount,
		summary.Nutrition.Calories, summary.Targets.Calories,
		summary.Nutrition.ProteinG, summary.Targets.ProteinG,
		summary.Nutrition.CarbsG, summary.Targets.CarbsG,
		summary.Nutrition.FatG, summary.Targets.FatG,
		weightLine, habitLine)
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}

// SendTestEmail 发送测试邮件
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用")
	}

	subject := "【LifeLog】邮件配置测试"
	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>✅ 邮件配置成功</h2>
    <p>如果你收到这封邮件，说明邮件服务配置正确。</p>
    <p style="color: #666;">—— LifeLog</p>
</body>
</html>
`
	return s.sendEmail(toEmail, subject, body)
}
