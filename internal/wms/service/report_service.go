package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/myapp2768/DSAS/internal/wms/entity"
	"github.com/myapp2768/DSAS/internal/wms/repository"
)

// statisticsCacheTTL 统计缓存有效期
const statisticsCacheTTL = 60 * time.Second

// InventoryStatistics 库存总体统计
type InventoryStatistics struct {
	TotalValue     float64 `json:"totalValue"`
	TotalQuantity  float64 `json:"totalQuantity"`
	LowStockCount  int64   `json:"lowStockCount"`
	OverStockCount int64   `json:"overStockCount"`
	MaterialCount  int64   `json:"materialCount"`
}

// MaterialStockStatistics 单个物料的库存统计
type MaterialStockStatistics struct {
	MaterialID     int64   `json:"materialId"`
	CurrentStock   float64 `json:"currentStock"`
	AvailableStock float64 `json:"availableStock"`
	TotalInbound   float64 `json:"totalInbound"`
	TotalOutbound  float64 `json:"totalOutbound"`
	RecordCount    int64   `json:"recordCount"`
}

// StockAlerts 库存预警
type StockAlerts struct {
	LowStockItems  []entity.Stock `json:"lowStockItems"`
	OverStockItems []entity.Stock `json:"overStockItems"`
}

// InventoryReport 时间段出入库报表
type InventoryReport struct {
	StartTime             time.Time                `json:"startTime"`
	EndTime               time.Time                `json:"endTime"`
	TotalInboundQuantity  float64                  `json:"totalInboundQuantity"`
	TotalInboundAmount    float64                  `json:"totalInboundAmount"`
	TotalOutboundQuantity float64                  `json:"totalOutboundQuantity"`
	TotalOutboundAmount   float64                  `json:"totalOutboundAmount"`
	InventoryRecords      []entity.InventoryRecord `json:"inventoryRecords"`
}

// ReportService 报表服务，只读
type ReportService struct {
	repos  *repository.Repositories
	rdb    *redis.Client
	logger *zap.Logger
}

// NewReportService 创建报表服务
func NewReportService(repos *repository.Repositories, rdb *redis.Client, logger *zap.Logger) *ReportService {
	return &ReportService{repos: repos, rdb: rdb, logger: logger}
}

// Statistics 库存总体统计，带60秒redis缓存
func (s *ReportService) Statistics(ctx context.Context) (*InventoryStatistics, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, statisticsCacheKey).Bytes()
		if err == nil {
			var stats InventoryStatistics
			if jsonErr := json.Unmarshal(cached, &stats); jsonErr == nil {
				return &stats, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("statistics cache read failed", zap.Error(err))
		}
	}

	stats, err := s.computeStatistics(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.rdb.Set(ctx, statisticsCacheKey, data, statisticsCacheTTL).Err(); err != nil {
				s.logger.Warn("statistics cache write failed", zap.Error(err))
			}
		}
	}
	return stats, nil
}

func (s *ReportService) computeStatistics(ctx context.Context) (*InventoryStatistics, error) {
	totalValue, err := s.repos.Stock.TotalValue(ctx)
	if err != nil {
		return nil, err
	}
	totalQuantity, err := s.repos.Stock.TotalQuantity(ctx)
	if err != nil {
		return nil, err
	}
	lowStocks, err := s.repos.Stock.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	overStocks, err := s.repos.Stock.FindOverStock(ctx)
	if err != nil {
		return nil, err
	}
	materialCount, err := s.repos.Stock.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &InventoryStatistics{
		TotalValue:     totalValue,
		TotalQuantity:  totalQuantity,
		LowStockCount:  int64(len(lowStocks)),
		OverStockCount: int64(len(overStocks)),
		MaterialCount:  materialCount,
	}, nil
}

// MaterialStatistics 单个物料的出入库与库存统计
func (s *ReportService) MaterialStatistics(ctx context.Context, materialID int64) (*MaterialStockStatistics, error) {
	if _, err := s.repos.Material.FindByID(ctx, materialID); err != nil {
		return nil, err
	}

	stats := &MaterialStockStatistics{MaterialID: materialID}

	stock, err := s.repos.Stock.FindByMaterialID(ctx, materialID)
	if err != nil && err != repository.ErrNotFound {
		return nil, err
	}
	if stock != nil {
		stats.CurrentStock = stock.CurrentQuantity
		stats.AvailableStock = stock.AvailableQuantity
	}

	if stats.TotalInbound, err = s.repos.StockIn.SumCompletedQuantityByMaterial(ctx, materialID); err != nil {
		return nil, err
	}
	if stats.TotalOutbound, err = s.repos.StockOut.SumCompletedQuantityByMaterial(ctx, materialID); err != nil {
		return nil, err
	}

	inCount, err := s.repos.StockIn.CountByMaterial(ctx, materialID)
	if err != nil {
		return nil, err
	}
	outCount, err := s.repos.StockOut.CountByMaterial(ctx, materialID)
	if err != nil {
		return nil, err
	}
	stats.RecordCount = inCount + outCount

	return stats, nil
}

// Alerts 库存预警：低库存与超储
func (s *ReportService) Alerts(ctx context.Context) (*StockAlerts, error) {
	lowStocks, err := s.repos.Stock.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	overStocks, err := s.repos.Stock.FindOverStock(ctx)
	if err != nil {
		return nil, err
	}
	return &StockAlerts{
		LowStockItems:  lowStocks,
		OverStockItems: overStocks,
	}, nil
}

// Report 时间段出入库报表，时间段内没有记录时合计为零
func (s *ReportService) Report(ctx context.Context, start, end time.Time) (*InventoryReport, error) {
	inQty, inAmount, err := s.repos.StockIn.SumCompletedByTimeRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	outQty, outAmount, err := s.repos.StockOut.SumCompletedByTimeRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	records, err := s.repos.InventoryRecord.ListByTimeRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &InventoryReport{
		StartTime:             start,
		EndTime:               end,
		TotalInboundQuantity:  inQty,
		TotalInboundAmount:    inAmount,
		TotalOutboundQuantity: outQty,
		TotalOutboundAmount:   outAmount,
		InventoryRecords:      records,
	}, nil
}

var reportExportHeaders = []string{
	"时间", "物料编码", "物料名称", "操作类型", "数量", "变动前", "变动后", "单价", "金额", "关联单号", "操作人", "备注",
}

// ExportReport 导出时间段报表为xlsx
func (s *ReportService) ExportReport(ctx context.Context, start, end time.Time) (*excelize.File, string, error) {
	report, err := s.Report(ctx, start, end)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "库存流水"
	f.SetSheetName("Sheet1", sheet)

	// 表头样式: 加粗
	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range reportExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, record := range report.InventoryRecords {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), record.OperatedAt.Format("2006-01-02 15:04:05"))
		if record.Material != nil {
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), record.Material.InternalCode)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), record.Material.Name)
		}
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), record.OperationType)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), record.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), record.BeforeQuantity)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), record.AfterQuantity)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), record.UnitPrice)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), record.TotalAmount)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), record.RelatedNumber)
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), record.OperatorName)
		f.SetCellValue(sheet, fmt.Sprintf("L%d", row), record.Remark)
	}

	// 底部汇总行
	summaryRow := len(report.InventoryRecords) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "汇总")
	f.SetCellValue(sheet, fmt.Sprintf("E%d", summaryRow),
		fmt.Sprintf("入库 %.2f / 出库 %.2f", report.TotalInboundQuantity, report.TotalOutboundQuantity))
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("L%d", summaryRow), summaryStyle)

	colWidths := []float64{20, 12, 20, 10, 10, 10, 10, 10, 12, 14, 10, 20}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("库存流水_%s_%s.xlsx", start.Format("20060102"), end.Format("20060102"))
	return f, filename, nil
}

// ExportReportCSV 导出时间段报表为GBK编码的CSV，兼容中文版Excel直接打开
func (s *ReportService) ExportReportCSV(ctx context.Context, start, end time.Time) ([]byte, string, error) {
	report, err := s.Report(ctx, start, end)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	// UTF-8 → GBK
	gbkWriter := transform.NewWriter(&buf, simplifiedchinese.GBK.NewEncoder())
	w := csv.NewWriter(gbkWriter)

	if err := w.Write(reportExportHeaders); err != nil {
		return nil, "", err
	}
	for _, record := range report.InventoryRecords {
		code, name := "", ""
		if record.Material != nil {
			code = record.Material.InternalCode
			name = record.Material.Name
		}
		row := []string{
			record.OperatedAt.Format("2006-01-02 15:04:05"),
			code,
			name,
			record.OperationType,
			fmt.Sprintf("%.2f", record.Quantity),
			fmt.Sprintf("%.2f", record.BeforeQuantity),
			fmt.Sprintf("%.2f", record.AfterQuantity),
			fmt.Sprintf("%.4f", record.UnitPrice),
			fmt.Sprintf("%.2f", record.TotalAmount),
			record.RelatedNumber,
			record.OperatorName,
			record.Remark,
		}
		if err := w.Write(row); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}
	if err := gbkWriter.Close(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("库存流水_%s_%s.csv", start.Format("20060102"), end.Format("20060102"))
	return buf.Bytes(), filename, nil
}

var materialExportHeaders = []string{
	"内部编码", "分类", "名称", "品牌", "规格", "单位", "含量", "单价", "单位价格", "状态", "备注",
}

// ExportMaterials 导出物料档案为xlsx
func (s *ReportService) ExportMaterials(ctx context.Context) (*excelize.File, string, error) {
	materials, err := s.repos.Material.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "物料档案"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})

	for i, h := range materialExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, m := range materials {
		row := rowIdx + 2
		status := "停用"
		if m.Active {
			status = "启用"
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.InternalCode)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Category)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), m.Name)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), m.Brand)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), m.Specification)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), m.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), m.Content)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), m.UnitPrice)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), m.PricePerUnit)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), status)
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), m.Remark)
	}

	colWidths := []float64{12, 12, 24, 14, 18, 8, 8, 10, 10, 8, 20}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("物料档案_%s.xlsx", time.Now().Format("20060102"))
	return f, filename, nil
}
