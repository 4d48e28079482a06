package api

import (
	"time"

	"lifelog/database"
	"lifelog/service"

	"github.com/gin-gonic/gin"
)

// ImportHandler 导入处理器
type ImportHandler struct {
	loc *time.Location
}

// NewImportHandler 创建导入处理器
func NewImportHandler(loc *time.Location) *ImportHandler {
	return &ImportHandler{loc: loc}
}

// ImportExcel 导入 Excel 工作簿
// @Summary 导入 Excel 工作簿
// @Description 上传一个工作簿（tab 布局见导出接口），逐行追加进各日志。
// @Description 解析失败的行按 tab 计入 skipped，不会使整个导入失败
// @Tags 导入
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Excel 文件 (.xlsx)"
// @Success 200 {object} Response{data=service.ImportResult} "导入完成"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 500 {object} Response "导入失败"
// @Router /api/v1/import/excel [post]
func (h *ImportHandler) ImportExcel(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "请上传 Excel 文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "读取上传文件失败"))
		return
	}
	defer file.Close()

	importer := service.NewImporter(database.GetDB(), h.loc)
	result, err := importer.ImportWorkbook(file)
	if err != nil {
		BadRequest(c, SafeErrorMessage(err, "无法读取工作簿"))
		return
	}
	invalidateSummary()

	SuccessWithMessage(c, "导入完成", result)
}
