package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockImporter(t *testing.T) (*Importer, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewImporter(gormDB, time.UTC), mock, func() { sqlDB.Close() }
}

// buildWorkbook 构造一个内存工作簿，rows 的首行是表头
func buildWorkbook(t *testing.T, sheets map[string][][]interface{}) *bytes.Buffer {
	f := excelize.NewFile()
	defer f.Close()

	for sheet, rows := range sheets {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
		for i, row := range rows {
			for j, v := range row {
				cell, err := excelize.CoordinatesToCellName(j+1, i+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(sheet, cell, v))
			}
		}
	}
	f.DeleteSheet("Sheet1")

	buf := new(bytes.Buffer)
	require.NoError(t, f.Write(buf))
	return buf
}

func expectInsert(mock sqlmock.Sqlmock, table string) {
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `" + table + "`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
}

func TestImportWorkbook(t *testing.T) {
	im, mock, cleanup := newMockImporter(t)
	defer cleanup()

	buf := buildWorkbook(t, map[string][][]interface{}{
		SheetMoney: {
			{"时间", "金额", "类别", "支付方式", "备注", "冲动"},
			{"2025-06-10 12:30:00", "42,50", "餐饮", "cash", "午餐", "否"},
			{"不是时间", "10", "餐饮", "cash", "", ""}, // 时间戳坏掉，跳过
			{"2025-06-10 18:00:00", "-5", "餐饮", "cash", "", ""}, // 负金额，跳过
		},
		SheetWeight: {
			{"时间", "体重(kg)"},
			{"2025-06-10", "78,4"},
		},
	})

	expectInsert(mock, "expenses")
	expectInsert(mock, "weights")

	result, err := im.ImportWorkbook(buf)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported[SheetMoney])
	assert.Equal(t, 2, result.Skipped[SheetMoney])
	assert.Equal(t, 1, result.Imported[SheetWeight])
	// 缺失的 tab 不报错也不计数
	assert.Equal(t, 0, result.Imported[SheetGym])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestImportWorkbook_GymAndHabits(t *testing.T) {
	im, mock, cleanup := newMockImporter(t)
	defer cleanup()

	buf := buildWorkbook(t, map[string][][]interface{}{
		SheetGym: {
			{"时间", "课表", "动作", "组号", "重量", "次数", "备注"},
			{"2025-06-08 18:00:00", "PPL", "卧推", "1", "62,5", "6", ""},
			{"2025-06-08 18:00:00", "PPL", "卧推", "0", "65", "5", ""}, // 组号非法，跳过
		},
		SheetProductivity: {
			{"时间", "读书", "整理", "反思"},
			{"2025-06-08", "是", "", "早睡了"},
		},
	})

	expectInsert(mock, "workout_sets")
	expectInsert(mock, "habits")

	result, err := im.ImportWorkbook(buf)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported[SheetGym])
	assert.Equal(t, 1, result.Skipped[SheetGym])
	assert.Equal(t, 1, result.Imported[SheetProductivity])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestImportWorkbook_NotAWorkbook(t *testing.T) {
	im, _, cleanup := newMockImporter(t)
	defer cleanup()

	_, err := im.ImportWorkbook(bytes.NewBufferString("definitely not xlsx"))
	assert.Error(t, err)
}

func TestParseTimestampLayouts(t *testing.T) {
	im := &Importer{loc: time.UTC}

	for _, raw := range []string{"2025-06-10 12:30:00", "2025-06-10 12:30", "2025-06-10"} {
		_, err := im.parseTimestamp(raw)
		assert.NoError(t, err, raw)
	}
	_, err := im.parseTimestamp("10.06.2025")
	assert.Error(t, err)
}

func TestParseBoolCell(t *testing.T) {
	assert.True(t, parseBoolCell("1"))
	assert.True(t, parseBoolCell("true"))
	assert.True(t, parseBoolCell("是"))
	assert.True(t, parseBoolCell("YES"))
	assert.False(t, parseBoolCell(""))
	assert.False(t, parseBoolCell("0"))
	assert.False(t, parseBoolCell("否"))
}
